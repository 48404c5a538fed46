package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html><body>
<div class="js-con">
  <div class="row">
    <div class="col-6 col-md-3 mb-4">
      <h4>32 ARDILLA</h4>
      <h5>09:00 AM</h5>
    </div>
    <div class="col-6 col-md-3 mb-4">
      <h4>@</h4>
      <h5>10:00 AM</h5>
    </div>
    <div class="col-6 col-md-3 mb-4">
      <h4>$ DELFIN</h4>
      <h5>11:00 AM</h5>
    </div>
    <div class="col-6 col-md-3 mb-4">
      <h4>17 PAVO</h4>
      <h5>1:00 PM</h5>
    </div>
  </div>
</div>
</body></html>`

func TestParseDay(t *testing.T) {
	draws, err := parseDay(strings.NewReader(samplePage))
	require.NoError(t, err)

	// The pending "@" card is skipped; the other three parse.
	require.Len(t, draws, 3)
	assert.Equal(t, draw{Slot: "09:00AM", Outcome: "32"}, draws[0])
	assert.Equal(t, draw{Slot: "11:00AM", Outcome: "0"}, draws[1])
	assert.Equal(t, draw{Slot: "1:00PM", Outcome: "17"}, draws[2])
}

func TestParseDayFallbackContainer(t *testing.T) {
	page := `<div class="container">
	  <div class="col-4">
	    <h3>5 LEON</h3>
	    <h5>08:00 AM</h5>
	  </div>
	</div>`

	draws, err := parseDay(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, draws, 1)
	assert.Equal(t, draw{Slot: "08:00AM", Outcome: "5"}, draws[0])
}

func TestParseDayNoContainer(t *testing.T) {
	_, err := parseDay(strings.NewReader(`<div class="unrelated"></div>`))
	assert.ErrorIs(t, err, errNoContainer)
}

func TestParseDayEmptyContainer(t *testing.T) {
	draws, err := parseDay(strings.NewReader(`<div class="js-con"></div>`))
	require.NoError(t, err)
	assert.Empty(t, draws)
}

func TestResolveCode(t *testing.T) {
	// Number and name agree: the number wins.
	assert.Equal(t, "32", resolveCode("ARDILLA", "32"))
	// Name disagrees with the number: the name decides.
	assert.Equal(t, "5", resolveCode("LEON", "32"))
	// Unknown name: fall back to the number.
	assert.Equal(t, "42", resolveCode("UNICORNIO", "42"))
}

func TestParseCardNameCorrection(t *testing.T) {
	page := `<div class="js-con">
	  <div class="col-4 mb-4">
	    <h4>99 CIEMPIESS</h4>
	    <h5>02:00 PM</h5>
	  </div>
	</div>`

	draws, err := parseDay(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, draws, 1)
	// The corrected name resolves to CIEMPIES, overriding the bogus number.
	assert.Equal(t, draw{Slot: "02:00PM", Outcome: "3"}, draws[0])
}
