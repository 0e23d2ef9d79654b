package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Meubles Jardin":     "meubles-jardin",
		"Équipement d'été":   "equipement-d-ete",
		"Déco & Lumière":     "deco-lumiere",
		"  espaces  ":        "espaces",
		"Promo 2026 !!":      "promo-2026",
		"çà-et-là":           "ca-et-la",
		"---":                "",
		"":                   "",
		"DÉJÀ-EN-MAJUSCULES": "deja-en-majuscules",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestSlugify_NoLeadingOrTrailingHyphen(t *testing.T) {
	got := Slugify("  !Nouveautés!  ")
	assert.Equal(t, "nouveautes", got)
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleManager))
	assert.True(t, ValidRole(RoleViewer))
	assert.False(t, ValidRole("root"))
	assert.False(t, ValidRole(""))
}
