package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoticeRole(t *testing.T) {
	assert.Equal(t, "alert", Notice{Kind: NoticeError, Message: "x"}.Role())
	assert.Equal(t, "status", Notice{Kind: NoticeInfo}.Role())
	assert.Equal(t, "status", Notice{}.Role())
	assert.Equal(t, NoticeInfo, Notice{}.KindClass())
	assert.Nil(t, ErrorNotice(""))
	assert.Equal(t, "alert", ErrorNotice("falhou").Role())
	assert.Nil(t, InfoNotice(""))
}

func TestEmptyStateHeading(t *testing.T) {
	assert.Equal(t, "Sem dados suficientes", Empty("nada").Heading())
	assert.Equal(t, "BI não configurado", EmptyState{Title: "BI não configurado"}.Heading())
}

func TestKPICardDefaultsToNeutral(t *testing.T) {
	assert.Equal(t, ToneNeutral, KPICard{}.ToneClass())
	assert.Equal(t, ToneDanger, KPICard{Tone: ToneDanger}.ToneClass())
}

func TestToneFor(t *testing.T) {
	assert.Equal(t, ToneDanger, ToneFor(25))
	assert.Equal(t, TonePositive, ToneFor(-3))
	assert.Equal(t, ToneNeutral, ToneFor(0))
}

func TestNavigationMarksActiveEntry(t *testing.T) {
	active := func(path string) []string {
		var out []string
		for _, item := range Navigation(path) {
			if item.Active {
				out = append(out, item.Href)
			}
		}
		return out
	}
	assert.Equal(t, []string{"/"}, active("/"))
	assert.Equal(t, []string{"/dashboard"}, active("/dashboard"))
	assert.Equal(t, []string{"/simulacoes"}, active("/simulacoes/export.csv"))
	assert.Empty(t, active("/dashboards"))
	assert.Empty(t, active("/healthz"))

	items := Navigation("/bi")
	assert.Len(t, items, 5)
	assert.Equal(t, "page", items[4].AriaCurrent())
	assert.Equal(t, "", items[0].AriaCurrent())
}
