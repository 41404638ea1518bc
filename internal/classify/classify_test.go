package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ambernotes/revops-etl/internal/models"
)

func TestChannelPriority(t *testing.T) {
	// Paid detection wins even when the medium also looks organic-ish.
	assert.Equal(t, models.ChannelPaidSearch, Channel("google", "cpc"))
	assert.Equal(t, models.ChannelPaidSearch, Channel("bing", "paidsearch"))
	assert.Equal(t, models.ChannelPaidSearch, Channel("google", "paid-social"))
	assert.Equal(t, models.ChannelOrganic, Channel("google", "organic"))
	assert.Equal(t, models.ChannelDirect, Channel("(direct)", "(none)"))
	assert.Equal(t, models.ChannelReferral, Channel("blog.example.com", "referral"))
	assert.Equal(t, models.ChannelEmail, Channel("newsletter", "email"))
	assert.Equal(t, models.ChannelOther, Channel("partner", "banner"))
}

func TestChannelIsTotal(t *testing.T) {
	cases := [][2]string{
		{"", ""}, {"  ", "  "}, {"???", "???"}, {"google", ""}, {"", "organic"},
	}
	valid := map[string]bool{
		models.ChannelPaidSearch: true, models.ChannelOrganic: true,
		models.ChannelDirect: true, models.ChannelReferral: true,
		models.ChannelEmail: true, models.ChannelOther: true,
	}
	for _, c := range cases {
		got := Channel(c[0], c[1])
		assert.True(t, valid[got], "Channel(%q, %q) = %q not in the enumerated set", c[0], c[1], got)
	}
}

func TestGeo(t *testing.T) {
	assert.Equal(t, "NL", Geo("NL"))
	assert.Equal(t, "NL", Geo("Netherlands"))
	assert.Equal(t, "DE", Geo("deutschland"))
	assert.Equal(t, "CH", Geo(" Switzerland "))
	assert.Equal(t, "AT", Geo("Austria"))
	assert.Equal(t, "Other", Geo("US"))
	assert.Equal(t, "Other", Geo(""))
}

func TestProductTypeOrder(t *testing.T) {
	// AmberNotes keywords beat the generic machine/human keywords.
	assert.Equal(t, models.ProductAmberNotes, ProductType("DE_AmberNotes_Auto"))
	assert.Equal(t, models.ProductHumanMade, ProductType("NL_Perfect_Transcription"))
	assert.Equal(t, models.ProductMachineMade, ProductType("FR_Auto_Draft"))
	assert.Equal(t, models.ProductOther, ProductType("IT_Generic"))
	assert.Equal(t, models.ProductOther, ProductType(""))
}

func TestBusinessUnit(t *testing.T) {
	assert.Equal(t, models.BUMedia, BusinessUnit("Subtitles"))
	assert.Equal(t, models.BUMedia, BusinessUnit("translation"))
	assert.Equal(t, models.BUInnovations, BusinessUnit("AmberNotes"))
	assert.Equal(t, models.BUTranscription, BusinessUnit("Transcription"))
	assert.Equal(t, models.BUTranscription, BusinessUnit(""))
}
