package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowdrop-pm/snowdrop/internal/release"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(key(k))
	}
	return m
}

var listAssets = []release.Asset{
	{ID: 1, Name: "tool-linux.zip", Size: 10},
	{ID: 2, Name: "tool-darwin.zip", Size: 20},
	{ID: 3, Name: "tool-windows.zip", Size: 30},
}

func TestAssetListSelect(t *testing.T) {
	m := send(newAssetListModel(listAssets), "down", "down", "up", "enter").(*assetListModel)
	chosen, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, listAssets[1], chosen)
}

func TestAssetListCursorBounds(t *testing.T) {
	m := send(newAssetListModel(listAssets), "up", "G", "down", "enter").(*assetListModel)
	chosen, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, listAssets[2], chosen)
}

func TestAssetListFilter(t *testing.T) {
	m := send(newAssetListModel(listAssets), "/", "win", "enter").(*assetListModel)
	require.Len(t, m.filtered, 1)
	assert.Contains(t, m.View(), "tool-windows.zip")

	m = send(m, "enter").(*assetListModel)
	chosen, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, "tool-windows.zip", chosen.Name)
}

func TestAssetListFilterCleared(t *testing.T) {
	m := send(newAssetListModel(listAssets), "/", "nothing", "esc").(*assetListModel)
	assert.Len(t, m.filtered, len(listAssets))
	_, ok := m.selected()
	assert.False(t, ok)
}

func TestAssetListAbort(t *testing.T) {
	for _, k := range []string{"esc", "q", "ctrl+c"} {
		m := send(newAssetListModel(listAssets), "down", k).(*assetListModel)
		_, ok := m.selected()
		assert.False(t, ok, k)
	}
}

func TestConfirmModel(t *testing.T) {
	tests := map[string]bool{
		"y":      true,
		"Y":      true,
		"n":      false,
		"enter":  false,
		"esc":    false,
		"ctrl+c": false,
	}
	for k, want := range tests {
		m := send(&confirmModel{question: "Install Tool?"}, k).(*confirmModel)
		assert.True(t, m.done, k)
		assert.Equal(t, want, m.answer, k)
	}

	m := send(&confirmModel{question: "Install Tool?"}, "x").(*confirmModel)
	assert.False(t, m.done)
	assert.Contains(t, m.View(), "Install Tool?")
}

func TestPATModel(t *testing.T) {
	m := newPATModel()
	m.input.SetValue("bogus")
	m = send(m, "enter").(*patModel)
	assert.False(t, m.done)
	assert.ErrorIs(t, m.err, errInvalidPAT)
	assert.NotContains(t, m.View(), "bogus")

	m.input.SetValue(testPAT)
	m = send(m, "enter").(*patModel)
	assert.True(t, m.done)
	assert.NoError(t, m.err)
	assert.Equal(t, testPAT, m.input.Value())
}

func TestPATModelAbort(t *testing.T) {
	m := send(newPATModel(), "esc").(*patModel)
	assert.True(t, m.aborted)
}
