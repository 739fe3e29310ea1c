package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAtom(t *testing.T) {
	// Arrange
	scenarios := [][2]string{
		{"Fußball", "fussball"},
		{"ÜBUNG", "uebung"},
		{"Ärger", "aerger"},
		{"Törn", "toern"},
		{"café", "cafe"},
		{"  Hello World ", "hello_world"},
		{"a--b", "a_b"},
		{"__trimmed__", "trimmed"},
		{"basketball", "basketball"},
		{"!!!", "x"},
		{"", "x"},
	}

	for _, scenario := range scenarios {
		// Act
		atom := NormalizeAtom(scenario[0], "c_")

		// Assert
		assert.Equal(t, scenario[1], atom)
	}
}

func TestNormalizeAtomDigitPrefix(t *testing.T) {
	assert.Equal(t, "c_3d_printing", NormalizeAtom("3D Printing", "c_"))
	assert.Equal(t, "s_007", NormalizeAtom("007", "s_"))
	assert.Equal(t, "x1", NormalizeAtom("x1", "c_"))
}
