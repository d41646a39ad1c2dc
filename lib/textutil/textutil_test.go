package textutil

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	table := []struct {
		input    string
		expected string
	}{
		{input: "105 Auction Gallery", expected: "105-auction-gallery"},
		{input: "0% Buyers Premium Coin Auction", expected: "0-buyers-premium-coin-auction"},
		{input: "  A & B Auctions, LLC  ", expected: "a-b-auctions-llc"},
		{input: "Smith -- Sons", expected: "smith-sons"},
		{input: "-Leading and trailing-", expected: "leading-and-trailing"},
		{input: "Tab\tand\nnewline", expected: "tab-and-newline"},
		{input: "Café Müller", expected: "caf-mller"},
		{input: "Acme\u00a0Auctions", expected: "acme-auctions"},
		{input: "Acme\vAuctions", expected: "acme-auctions"},
		{input: "Acme\u2003Auctions", expected: "acme-auctions"},
		{input: "\u00a0Acme \u00a0 Auctions\u3000", expected: "acme-auctions"},
		{input: "!!!", expected: ""},
		{input: "", expected: ""},
	}

	for _, row := range table {
		require.Equal(t, row.expected, Slugify(row.input), row.input)
	}
}

var slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugifyShape(t *testing.T) {
	inputs := []string{
		"105 Auction Gallery",
		"  --Weird__Name!!  with   spaces-- ",
		"ALL CAPS AUCTIONS INC.",
		"Ünïcödé / Slashes \\ and | pipes",
		"a-b-c",
		"---",
		"x",
	}

	for _, input := range inputs {
		slug := Slugify(input)
		require.Equal(t, slug, Slugify(slug), "slug must be stable under re-application")
		if slug == "" {
			continue
		}
		require.Regexp(t, slugShape, slug)
		require.False(t, strings.Contains(slug, "--"))
	}
}

func TestJoinNonBlank(t *testing.T) {
	require.Equal(t, "Dallas, TX, USA", JoinNonBlank(", ", "Dallas", "TX", "USA"))
	require.Equal(t, "Dallas, USA", JoinNonBlank(", ", "Dallas", "  ", "USA"))
	require.Equal(t, "", JoinNonBlank(", ", "", " ", "\t"))
}

func TestCollapseWhitespace(t *testing.T) {
	require.Equal(t, "123 Main St Dallas, TX", CollapseWhitespace("  123 Main St\n\t Dallas,   TX "))
}
