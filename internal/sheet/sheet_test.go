package sheet

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFormatFromName(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"people.xlsx", XLSX, false},
		{"PEOPLE.XLSX", XLSX, false},
		{"export.csv", CSV, false},
		{"legacy.xls", XLS, false},
		{"notes.pdf", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatFromName(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFileType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCodec_ReadCSV(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  [][]string
	}{
		{
			name:  "comma separated",
			input: []byte("a,b\nc,d\n"),
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "semicolon separated with BOM",
			input: append([]byte{0xEF, 0xBB, 0xBF}, []byte("Nome;Email\nJoão;j@x.com\n")...),
			want:  [][]string{{"Nome", "Email"}, {"João", "j@x.com"}},
		},
		{
			name:  "windows-1252 accents",
			input: []byte("Nome;Cidade\nJos\xe9;Bel\xe9m\n"),
			want:  [][]string{{"Nome", "Cidade"}, {"José", "Belém"}},
		},
		{
			name:  "quoted delimiter is not counted",
			input: []byte("\"a;b\",c\nd,e\n"),
			want:  [][]string{{"a;b", "c"}, {"d", "e"}},
		},
		{
			name:  "blank lines keep their row",
			input: []byte("name,email\nana,a@x\n\nana,a@x\n"),
			want:  [][]string{{"name", "email"}, {"ana", "a@x"}, {}, {"ana", "a@x"}},
		},
		{
			name:  "multi-line quoted cell before a blank line",
			input: []byte("a,\"x\ny\"\n\nb,c\r\n"),
			want:  [][]string{{"a", "x\ny"}, {}, {"b", "c"}},
		},
		{
			name:  "ragged rows",
			input: []byte("a,b,c\nd\n"),
			want:  [][]string{{"a", "b", "c"}, {"d"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Codec{}.Read(bytes.NewReader(tt.input), "file.csv")
			require.NoError(t, err)
			assert.Equal(t, tt.want, rows)
		})
	}
}

func TestCodec_XLSXRoundTrip(t *testing.T) {
	rows := [][]string{
		{"First Name", "Last Name", "Email"},
		{"Ana", "Silva", "ana@x.com"},
		{"Bia", "", "bia@x.com"},
	}

	var buf bytes.Buffer
	require.NoError(t, Codec{}.Write(&buf, rows, XLSX))

	got, err := Codec{}.Read(bytes.NewReader(buf.Bytes()), "dupes.xlsx")
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, rows[0], got[0])
	assert.Equal(t, rows[1], got[1])
	assert.Equal(t, "Bia", got[2][0])
	assert.Equal(t, "bia@x.com", got[2][2])
}

func TestCodec_XLSXReadsFirstSheet(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Pessoas"))
	_, err := f.NewSheet("Outra")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Pessoas", "A1", "primeira"))
	require.NoError(t, f.SetCellValue("Outra", "A1", "segunda"))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := Codec{}.Read(&buf, "book.xlsx")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"primeira"}}, rows)
}

func TestCodec_CSVRoundTrip(t *testing.T) {
	rows := [][]string{{"Nome", "Observação"}, {"Ana", "tem, vírgula"}}

	var buf bytes.Buffer
	require.NoError(t, Codec{}.Write(&buf, rows, CSV))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), utf8BOM))

	got, err := Codec{}.Read(&buf, "out.csv")
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestCodec_Errors(t *testing.T) {
	_, err := Codec{}.Read(strings.NewReader("whatever"), "old.pdf")
	assert.True(t, errors.Is(err, ErrUnsupportedFileType))

	_, err = Codec{}.Read(strings.NewReader("not a compound file"), "old.xls")
	assert.ErrorIs(t, err, ErrMalformed)

	err = Codec{}.Write(&bytes.Buffer{}, [][]string{{"a"}}, XLS)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	_, err = Codec{}.Read(strings.NewReader("not a zip"), "broken.xlsx")
	assert.ErrorIs(t, err, ErrMalformed)

	err = Codec{}.Write(&bytes.Buffer{}, nil, Format("pdf"))
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestParseFormat_RejectsXLS(t *testing.T) {
	_, err := ParseFormat("xls")
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
	assert.Equal(t, "application/vnd.ms-excel", XLS.ContentType())
}

func TestTrimTrailingEmpty(t *testing.T) {
	assert.Equal(t, []string{"a", "", "b"}, trimTrailingEmpty([]string{"a", "", "b", "", ""}))
	assert.Empty(t, trimTrailingEmpty([]string{"", ""}))
}
