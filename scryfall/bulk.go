package scryfall

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrMalformedPayload = errors.New("malformed bulk data payload")
var ErrEmptyPayload = errors.New("empty bulk data payload")

// DecodeCards streams a bulk data JSON array, calling fn on every record in
// upstream order. Records are not retained after fn returns.
// Any decoding problem aborts the whole stream with ErrMalformedPayload.
func DecodeCards(r io.Reader, fn func(card *Card) error) error {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '[' {
		return fmt.Errorf("%w: expected an array, found %v", ErrMalformedPayload, tok)
	}

	count := 0
	for dec.More() {
		var card Card
		err = dec.Decode(&card)
		if err != nil {
			return fmt.Errorf("%w: record %d: %v", ErrMalformedPayload, count, err)
		}
		count++

		err = fn(&card)
		if err != nil {
			return err
		}
	}

	// Consume the closing bracket to catch truncated files
	_, err = dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if count == 0 {
		return ErrEmptyPayload
	}

	return nil
}

// LoadCards decodes the full bulk data payload in memory.
func LoadCards(r io.Reader) ([]Card, error) {
	var cards []Card
	err := DecodeCards(r, func(card *Card) error {
		cards = append(cards, *card)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}
