package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name string
		text string
		want rune
	}{
		{"comma", "a,b,c\n1,2,3\n4,5,6\n", ','},
		{"tab", "a\tb\tc\n1\t2\t3\n", '\t'},
		{"pipe", "a|b|c\n1|2|3\n", '|'},
		{"semicolon", "a;b;c\n1;2;3\n", ';'},
		{"semicolon with decimal commas", "Comfort;Comfort_1\n4,5;3,5\n2,0;1,5\n", ';'},
		{"single column falls back to comma", "only\n1\n2\n", ','},
		{"empty", "", ','},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectDelimiter(tt.text))
		})
	}
}

func TestReadData_Delimited(t *testing.T) {
	text := "\ufeffComfort,Comfort_1, Gender \n4,3,Male\n\n,,\n5,2\n3,4,Female,extra\n"

	table, err := NewDataReader().ReadData([]byte(text))
	require.NoError(t, err)

	assert.Equal(t, FormatDelimited, table.Format)
	assert.Equal(t, ',', table.Comma)
	assert.Equal(t, []string{"Comfort", "Comfort_1", " Gender "}, table.Headers, "headers are kept verbatim")
	require.Len(t, table.Rows, 3, "blank lines are skipped")
	assert.Equal(t, "", table.Rows[1].Cell(2), "short rows read as empty cells")
	assert.Equal(t, "extra", table.Rows[2].Cell(3))
}

func TestReadData_PinnedDelimiter(t *testing.T) {
	table, err := NewDataReader().WithDelimiter(';').ReadData([]byte("a,b;c\n1,2;3\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a,b", "c"}, table.Headers)
}

func TestReadData_NoHeader(t *testing.T) {
	_, err := NewDataReader().ReadData([]byte("\n\n"))
	assert.Error(t, err)
}

func TestReadData_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Comfort", "Comfort_1", "Gender"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{4, 3, "Male"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{5, 2, "Female"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := NewDataReader().ReadData(buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, FormatXLSX, table.Format)
	assert.Equal(t, []string{"Comfort", "Comfort_1", "Gender"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "4", table.Rows[0].Cell(0))
	assert.Equal(t, "Female", table.Rows[1].Cell(2))
}

func TestReadData_DuplicateHeaders(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"repeated", "Comfort,Comfort,Comfort\n5,3,1\n", []string{"Comfort", "Comfort_1", "Comfort_2"}},
		{"suffix already taken", "Comfort,Comfort_1,Comfort\n5,3,1\n", []string{"Comfort", "Comfort_1", "Comfort_2"}},
		{"interleaved", "Gender,Comfort,Gender,Comfort\n1,2,3,4\n", []string{"Gender", "Comfort", "Gender_1", "Comfort_1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewDataReader().ReadData([]byte(tt.text))
			require.NoError(t, err)
			assert.Equal(t, tt.want, table.Headers)
		})
	}
}
