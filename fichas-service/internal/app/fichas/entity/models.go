package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CondicaoArmazenamento - условия хранения сырья
type CondicaoArmazenamento string

const (
	AmbienteSeco CondicaoArmazenamento = "AMBIENTE_SECO"
	Refrigerado  CondicaoArmazenamento = "REFRIGERADO"
	Congelado    CondicaoArmazenamento = "CONGELADO"
)

func (c CondicaoArmazenamento) Valid() bool {
	switch c {
	case AmbienteSeco, Refrigerado, Congelado:
		return true
	}
	return false
}

// NivelDificuldade - уровень сложности рецептуры
type NivelDificuldade string

const (
	Basico        NivelDificuldade = "BASICO"
	Intermediario NivelDificuldade = "INTERMEDIARIO"
	Avancado      NivelDificuldade = "AVANCADO"
)

func (n NivelDificuldade) Valid() bool {
	switch n {
	case Basico, Intermediario, Avancado:
		return true
	}
	return false
}

const TipoUnidadePadrao = "UNIDADE"

// UnidadeMedida - единица измерения. Общая для всех пользователей, user_id нет.
type UnidadeMedida struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Nome       string    `json:"nome" gorm:"type:varchar(100);not null"`
	Abreviacao string    `json:"abreviacao" gorm:"type:varchar(20);not null"`
	Tipo       string    `json:"tipo" gorm:"type:varchar(30);not null"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (UnidadeMedida) TableName() string {
	return "unidades_medida"
}

// CategoriaReceita - категория рецептур, принадлежит одному пользователю
type CategoriaReceita struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Nome      string    `json:"nome" gorm:"type:varchar(150);not null"`
	Descricao *string   `json:"descricao" gorm:"type:text"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (CategoriaReceita) TableName() string {
	return "categorias_receitas"
}

// CategoriaInsumo - категория сырья, независимая от категорий рецептур
type CategoriaInsumo struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Nome      string    `json:"nome" gorm:"type:varchar(150);not null"`
	Descricao *string   `json:"descricao" gorm:"type:text"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (CategoriaInsumo) TableName() string {
	return "categorias_insumos"
}

type Fornecedor struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Nome      string    `json:"nome" gorm:"type:varchar(200);not null"`
	Contato   *string   `json:"contato" gorm:"type:varchar(200)"`
	Telefone  *string   `json:"telefone" gorm:"type:varchar(50)"`
	Email     *string   `json:"email" gorm:"type:varchar(200)"`
	Endereco  *string   `json:"endereco" gorm:"type:text"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (Fornecedor) TableName() string {
	return "fornecedores"
}

// Insumo - позиция склада сырья.
// EstoqueBaixo вычисляется после чтения и в БД не хранится.
type Insumo struct {
	ID                    uuid.UUID             `json:"id" gorm:"type:uuid;primaryKey"`
	Nome                  string                `json:"nome" gorm:"type:varchar(200);not null"`
	CategoriaID           uuid.UUID             `json:"categoriaId" gorm:"type:uuid;not null;index"`
	UnidadeID             uuid.UUID             `json:"unidadeId" gorm:"type:uuid;not null"`
	PrecoPorUnidade       decimal.Decimal       `json:"precoPorUnidade" gorm:"type:decimal(12,4);not null"`
	FornecedorID          *uuid.UUID            `json:"fornecedorId" gorm:"type:uuid;index"`
	EstoqueAtual          decimal.Decimal       `json:"estoqueAtual" gorm:"type:decimal(12,3);not null"`
	EstoqueMinimo         decimal.Decimal       `json:"estoqueMinimo" gorm:"type:decimal(12,3);not null"`
	CondicaoArmazenamento CondicaoArmazenamento `json:"condicaoArmazenamento" gorm:"type:varchar(20);not null"`
	DataCompra            *time.Time            `json:"dataCompra" gorm:"type:date"`
	UserID                uuid.UUID             `json:"userId" gorm:"type:uuid;not null;index"`
	CreatedAt             time.Time             `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt             time.Time             `json:"updatedAt" gorm:"autoUpdateTime"`

	Categoria  *CategoriaInsumo `json:"categoria,omitempty" gorm:"foreignKey:CategoriaID"`
	Unidade    *UnidadeMedida   `json:"unidade,omitempty" gorm:"foreignKey:UnidadeID"`
	Fornecedor *Fornecedor      `json:"fornecedor,omitempty" gorm:"foreignKey:FornecedorID;constraint:OnDelete:SET NULL"`

	EstoqueBaixo bool `json:"estoqueBaixo" gorm:"-"`
}

func (Insumo) TableName() string {
	return "insumos"
}

// EmEstoqueBaixo - estoqueAtual <= estoqueMinimo. Только индикатор, не ограничение.
func (i *Insumo) EmEstoqueBaixo() bool {
	return i.EstoqueAtual.LessThanOrEqual(i.EstoqueMinimo)
}

// AfterFind - GORM hook, заполняет EstoqueBaixo для каждой прочитанной строки
func (i *Insumo) AfterFind(tx *gorm.DB) error {
	i.EstoqueBaixo = i.EmEstoqueBaixo()
	return nil
}

// FichaTecnica - заголовок технологической карты.
// Versao начинается с 1 и растет на 1 при каждом обновлении.
type FichaTecnica struct {
	ID               uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	Nome             string              `json:"nome" gorm:"type:varchar(200);not null"`
	CategoriaID      uuid.UUID           `json:"categoriaId" gorm:"type:uuid;not null;index"`
	TempoPreparo     *int                `json:"tempoPreparo"`
	TemperaturaForno *int                `json:"temperaturaForno"`
	ModoPreparo      string              `json:"modoPreparo" gorm:"type:text;not null"`
	PesoFinal        decimal.NullDecimal `json:"pesoFinal" gorm:"type:decimal(10,2)"`
	Observacoes      *string             `json:"observacoes" gorm:"type:text"`
	NivelDificuldade NivelDificuldade    `json:"nivelDificuldade" gorm:"type:varchar(20);not null"`
	Versao           int                 `json:"versao" gorm:"not null"`
	UserID           uuid.UUID           `json:"userId" gorm:"type:uuid;not null;index"`
	CreatedAt        time.Time           `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt        time.Time           `json:"updatedAt" gorm:"autoUpdateTime"`

	Categoria    *CategoriaReceita  `json:"categoria,omitempty" gorm:"foreignKey:CategoriaID"`
	Ingredientes []IngredienteFicha `json:"ingredientes" gorm:"foreignKey:FichaID"`
}

func (FichaTecnica) TableName() string {
	return "fichas_tecnicas"
}

// IngredienteFicha - строка состава. Ordem хранит позицию в присланном массиве.
type IngredienteFicha struct {
	ID                 uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	FichaID            uuid.UUID           `json:"fichaId" gorm:"type:uuid;not null;index"`
	InsumoID           uuid.UUID           `json:"insumoId" gorm:"type:uuid;not null;index"`
	Quantidade         decimal.Decimal     `json:"quantidade" gorm:"type:decimal(12,3);not null"`
	UnidadeID          *uuid.UUID          `json:"unidadeId" gorm:"type:uuid"`
	PorcentagemPadeiro decimal.NullDecimal `json:"porcentagemPadeiro" gorm:"type:decimal(7,2)"`
	Ordem              int                 `json:"ordem" gorm:"not null"`

	Insumo  *Insumo        `json:"insumo,omitempty" gorm:"foreignKey:InsumoID;constraint:OnDelete:RESTRICT"`
	Unidade *UnidadeMedida `json:"unidade,omitempty" gorm:"foreignKey:UnidadeID"`
}

func (IngredienteFicha) TableName() string {
	return "ingredientes_ficha"
}

// AbreviacaoUnidade - единица строки, иначе единица самого сырья
func (l *IngredienteFicha) AbreviacaoUnidade() string {
	if l.Unidade != nil {
		return l.Unidade.Abreviacao
	}
	if l.Insumo != nil && l.Insumo.Unidade != nil {
		return l.Insumo.Unidade.Abreviacao
	}
	return ""
}

// Sessao - личность вызывающего, разрешенная один раз на запрос
type Sessao struct {
	UserID    uuid.UUID
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// Models возвращает все таблицы сервиса для AutoMigrate
func Models() []interface{} {
	return []interface{}{
		&UnidadeMedida{},
		&CategoriaReceita{},
		&CategoriaInsumo{},
		&Fornecedor{},
		&Insumo{},
		&FichaTecnica{},
		&IngredienteFicha{},
	}
}
