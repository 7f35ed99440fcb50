// Package shortid generates random short URL IDs.
package shortid

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet is the set of characters short URL IDs are drawn from.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// DefaultLength is used when a generator is created with a non-positive length.
const DefaultLength = 7

// Generator produces fixed-length random IDs. It does not guarantee uniqueness.
type Generator struct {
	length int
}

func NewGenerator(length int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}

	return &Generator{length: length}
}

// Generate returns a new random ID.
func (g *Generator) Generate() (string, error) {
	const op = "shortid.Generator.Generate"

	id, err := gonanoid.Generate(Alphabet, g.length)
	if err != nil {
		return "", fmt.Errorf("%s: failed to generate id: %w", op, err)
	}

	return id, nil
}
