package excel

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenReadRoundTrip(t *testing.T) {
	header := []string{"Industry Segment", "Domain Group", "Category", "Sub-Category"}
	rows := [][]string{
		{"Life Sciences", "Strategy", "Planning", "Forecasting"},
		{"Life Sciences", "Operations", "Execution", "Delivery"},
	}

	data, err := WriteRows("Hierarchy", header, rows)
	require.NoError(t, err)

	got, err := ReadRows(bytes.NewReader(data), "hierarchy.xlsx")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, header, got[0])
	assert.Equal(t, rows[0], got[1])
	assert.Equal(t, rows[1], got[2])
}

func TestReadRows_CSV(t *testing.T) {
	input := "Industry Segment,Domain Group,Category,Sub-Category\n" +
		"Life Sciences,Strategy,Planning,Forecasting\n" +
		"Life Sciences,Strategy\n" // ragged row
	got, err := ReadRows(strings.NewReader(input), "upload.csv")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Life Sciences", "Strategy"}, got[2])
}

func TestReadRows_TrimsCells(t *testing.T) {
	input := " Life Sciences , Strategy ,Planning, Forecasting \n"
	got, err := ReadRows(strings.NewReader(input), "upload.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"Life Sciences", "Strategy", "Planning", "Forecasting"}, got[0])
}

func TestReadRows_CorruptWorkbookIsHardFailure(t *testing.T) {
	_, err := ReadRows(bytes.NewReader([]byte("this is not a workbook")), "upload.xlsx")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadableFile)
}

func TestWriteRows_CapsSheetName(t *testing.T) {
	long := strings.Repeat("x", 40)
	data, err := WriteRows(long, []string{"a"}, nil)
	require.NoError(t, err)
	_, err = ReadRows(bytes.NewReader(data), "x.xlsx")
	require.NoError(t, err)
}
