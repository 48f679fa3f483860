package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"blackjack-server/internal/util"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("BLACKJACK_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("BLACKJACK_HTTP_ADDR", ":6000")
	defer clear2()

	a := assert.New(t)
	a.NoError(Load())

	cfg := Instance()
	a.Equal(":36001", cfg.TCPAddr)
	a.Equal(":6000", cfg.HTTPAddr)
	a.Equal("debug", cfg.Log.Level)
	a.Equal(1000, cfg.Game.StartingBalance)

	// ensure that it's only loaded once
	_ = os.Setenv("BLACKJACK_HTTP_ADDR", ":7000")
	// ensure we aren't using a pointer
	cfg.HTTPAddr = "bad"
	cfg = Instance()
	a.Equal(":6000", cfg.HTTPAddr)
}

func TestDefaults(t *testing.T) {
	clear := util.SetEnv("BLACKJACK_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, ":35001", cfg.TCPAddr)
	assert.Equal(t, ":5000", cfg.HTTPAddr)
	assert.Equal(t, 500, cfg.Game.StartingBalance)
}
