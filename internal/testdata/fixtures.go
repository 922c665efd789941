// Package testdata provides test fixtures for agromind-mcp tests.
package testdata

import (
	"embed"
)

//go:embed fixtures/*
var Fixtures embed.FS

// Fixture names.
const (
	OpenFarmLettuce    = "openfarm_lettuce.json"
	OpenFarmCommonName = "openfarm_common_name.json"
	OpenFarmEmpty      = "openfarm_empty.json"
)

// GetFixture returns the content of a fixture file.
func GetFixture(name string) ([]byte, error) {
	return Fixtures.ReadFile("fixtures/" + name)
}

// MustGetFixture returns the content of a fixture file or panics.
func MustGetFixture(name string) []byte {
	data, err := GetFixture(name)
	if err != nil {
		panic(err)
	}
	return data
}
