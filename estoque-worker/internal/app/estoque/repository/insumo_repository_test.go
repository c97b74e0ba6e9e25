package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type InsumoRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  InsumoRepository
	sqlDB *sql.DB
}

func TestInsumoRepositorySuite(t *testing.T) {
	suite.Run(t, new(InsumoRepositoryTestSuite))
}

func (s *InsumoRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewInsumoRepository(s.db)
}

func (s *InsumoRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func (s *InsumoRepositoryTestSuite) TestListEstoqueBaixo_Success() {
	id := uuid.New()
	userID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "nome", "estoque_atual", "estoque_minimo", "user_id"}).
		AddRow(id.String(), "Farinha de trigo", "1.500", "2.000", userID.String())

	s.mock.ExpectQuery(`SELECT .+ FROM "insumos" WHERE estoque_atual <= estoque_minimo ORDER BY user_id, nome`).
		WillReturnRows(rows)

	insumos, err := s.repo.ListEstoqueBaixo(context.Background())

	s.NoError(err)
	s.Require().Len(insumos, 1)
	s.Equal(id, insumos[0].ID)
	s.Equal(userID, insumos[0].UserID)
	s.Equal("Farinha de trigo", insumos[0].Nome)
	s.True(insumos[0].EstoqueAtual.Equal(decimal.RequireFromString("1.5")))
	s.True(insumos[0].EstoqueMinimo.Equal(decimal.RequireFromString("2")))
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *InsumoRepositoryTestSuite) TestListEstoqueBaixo_Empty() {
	rows := sqlmock.NewRows([]string{"id", "nome", "estoque_atual", "estoque_minimo", "user_id"})
	s.mock.ExpectQuery(`SELECT .+ FROM "insumos"`).WillReturnRows(rows)

	insumos, err := s.repo.ListEstoqueBaixo(context.Background())

	s.NoError(err)
	s.NotNil(insumos)
	s.Empty(insumos)
}

func (s *InsumoRepositoryTestSuite) TestListEstoqueBaixo_DatabaseError() {
	s.mock.ExpectQuery(`SELECT .+ FROM "insumos"`).WillReturnError(errors.New("connection reset"))

	insumos, err := s.repo.ListEstoqueBaixo(context.Background())

	s.Error(err)
	s.Nil(insumos)
	s.Contains(err.Error(), "failed to list low-stock insumos")
}
