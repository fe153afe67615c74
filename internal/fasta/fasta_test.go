package fasta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMultipleContigs(t *testing.T) {
	input := ">contig1 description\n" +
		"ACGT\n" +
		"ACGT\n" +
		">contig2\n" +
		"TTTT\n"
	contigs, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, contigs, 2)
	assert.Equal(t, "contig1 description", contigs[0].Header)
	assert.Equal(t, "ACGTACGT", string(contigs[0].Sequence))
	assert.Equal(t, "contig2", contigs[1].Header)
	assert.Equal(t, "TTTT", string(contigs[1].Sequence))
}

func TestParseStripsWhitespaceOnly(t *testing.T) {
	input := ">c\nAC GT\n\tAC\n"
	contigs, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, contigs, 1)
	assert.Equal(t, "ACGTAC", string(contigs[0].Sequence))
}

func TestParseNoLeadingHeaderIgnored(t *testing.T) {
	input := "ACGT\n>c\nTTTT\n"
	contigs, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, contigs, 1)
	assert.Equal(t, "TTTT", string(contigs[0].Sequence))
}

func TestParseEmptyInput(t *testing.T) {
	contigs, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, contigs)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile("/nonexistent/path.fa")
	assert.Error(t, err)
}
