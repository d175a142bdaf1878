package service

import "context"

type dummyGenerator struct{}

func (d dummyGenerator) GenerateContent(context.Context, string) (string, error) {
	return `{"query_intent":"placeholder","topics":[],"suggested_books":[]}`, nil
}

// NewDummyGenerator returns a generator with canned output for local dev.
func NewDummyGenerator() TextGenerator {
	return dummyGenerator{}
}
