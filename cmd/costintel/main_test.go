package main

import (
	"testing"

	"github.com/costintel/costintel/internal/app"
	_ "github.com/costintel/costintel/testing"
)

func TestMainSkipsStartupInTestMode(t *testing.T) {
	app.RefreshTestMode()
	if !app.InTestMode() {
		t.Fatal("expected test mode")
	}
	main()
}
