package pdf

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"fichaspro/fichas-service/internal/app/fichas/entity"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const naoInformado = "N/A"

// FichaRenderer строит печатную форму ficha (A4, книжная)
type FichaRenderer struct{}

func NewFichaRenderer() *FichaRenderer {
	return &FichaRenderer{}
}

// Render возвращает PDF целиком в памяти
func (r *FichaRenderer) Render(ficha *entity.FichaTecnica) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle(ficha.Nome, true)
	pdf.AddPage()

	// Helvetica в fpdf работает в cp1252, без перевода акценты ломаются
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// Заголовок
	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(contentW, 9, tr(ficha.Nome), "", "C", false)
	pdf.Ln(1)

	categoria := ""
	if ficha.Categoria != nil {
		categoria = ficha.Categoria.Nome
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, tr(fmt.Sprintf("Categoria: %s | Versão: %d | Data: %s",
		categoria, ficha.Versao, ficha.CreatedAt.Format("02/01/2006"))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Параметры
	pdf.SetFont("Helvetica", "", 10)
	third := contentW / 3
	pdf.CellFormat(third, 7, tr("Tempo de preparo: "+minutos(ficha.TempoPreparo)), "1", 0, "L", false, 0, "")
	pdf.CellFormat(third, 7, tr("Temperatura do forno: "+graus(ficha.TemperaturaForno)), "1", 0, "L", false, 0, "")
	pdf.CellFormat(third, 7, tr("Nível: "+nivel(ficha.NivelDificuldade)), "1", 1, "L", false, 0, "")
	if ficha.PesoFinal.Valid {
		pdf.CellFormat(contentW, 7, tr("Peso final: "+ficha.PesoFinal.Decimal.String()), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Состав
	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.14
	col4 := contentW * 0.18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, "Ingredientes", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(col1, 7, "Ingrediente", "1", 0, "L", true, 0, "")
	pdf.CellFormat(col2, 7, tr("Qtd."), "1", 0, "R", true, 0, "")
	pdf.CellFormat(col3, 7, "Un.", "1", 0, "C", true, 0, "")
	pdf.CellFormat(col4, 7, "% Padeiro", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for i := range ficha.Ingredientes {
		linha := &ficha.Ingredientes[i]
		nome := ""
		if linha.Insumo != nil {
			nome = linha.Insumo.Nome
		}
		padeiro := "-"
		if linha.PorcentagemPadeiro.Valid {
			padeiro = linha.PorcentagemPadeiro.Decimal.String() + "%"
		}

		pdf.CellFormat(col1, 7, tr(nome), "1", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 7, linha.Quantidade.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 7, tr(linha.AbreviacaoUnidade()), "1", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 7, padeiro, "1", 1, "R", false, 0, "")
	}
	if len(ficha.Ingredientes) == 0 {
		pdf.CellFormat(contentW, 7, "Nenhum ingrediente cadastrado", "1", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, "Modo de Preparo", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(contentW, 5, tr(ficha.ModoPreparo), "", "L", false)

	if ficha.Observacoes != nil && strings.TrimSpace(*ficha.Observacoes) != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(contentW, 7, tr("Observações Técnicas"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(contentW, 5, tr(*ficha.Observacoes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render ficha: %w", err)
	}
	return buf.Bytes(), nil
}

var slugInvalido = regexp.MustCompile(`[^a-z0-9]+`)

// FileName - имя файла для Content-Disposition: ficha-<slug>-v<versao>.pdf
func FileName(ficha *entity.FichaTecnica) string {
	slug := strings.Trim(slugInvalido.ReplaceAllString(strings.ToLower(semAcentos(ficha.Nome)), "-"), "-")
	if slug == "" {
		slug = "sem-nome"
	}
	return fmt.Sprintf("ficha-%s-v%d.pdf", slug, ficha.Versao)
}

// semAcentos убирает диакритику: NFD раскладывает "ã" на "a" и знак, знаки выбрасываются
func semAcentos(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func minutos(v *int) string {
	if v == nil {
		return naoInformado
	}
	return strconv.Itoa(*v) + " min"
}

func graus(v *int) string {
	if v == nil {
		return naoInformado
	}
	return strconv.Itoa(*v) + " °C"
}

func nivel(n entity.NivelDificuldade) string {
	switch n {
	case entity.Basico:
		return "Básico"
	case entity.Intermediario:
		return "Intermediário"
	case entity.Avancado:
		return "Avançado"
	}
	return naoInformado
}
