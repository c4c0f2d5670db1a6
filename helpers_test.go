package codes

import (
	"github.com/gofhir/codes/pkg/element"
	"github.com/gofhir/codes/pkg/vocabulary"
)

type color int

const (
	red color = iota
	green
	blue
	undeclared
)

func testVocabulary() *vocabulary.Vocabulary[color] {
	return vocabulary.New("Color", "http://example.org/ValueSet/color", []vocabulary.Entry[color]{
		{Member: red, Wire: "red", Display: "Red"},
		{Member: green, Wire: "green", Display: "Green"},
		{Member: blue, Wire: "blue", Display: "Blue"},
	})
}

func extensibleVocabulary() *vocabulary.Vocabulary[color] {
	return vocabulary.New("OpenColor", "http://example.org/ValueSet/open-color", []vocabulary.Entry[color]{
		{Member: red, Wire: "red"},
		{Member: green, Wire: "green"},
	}, vocabulary.WithExtensible(true))
}

func note(url, text string) *element.Extension {
	return element.NewExtension(url, element.NewString(text))
}
