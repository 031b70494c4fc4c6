package query

import (
	"fmt"
	"strings"
)

// Batch is an ordered list of statements sent to the store in one round
// trip. An empty Batch is valid and runs nothing.
type Batch []Statement

func (b Batch) Statements() []Statement { return b }

// Inline renders every statement as literal SQL, each terminated by `;`.
func (b Batch) Inline() (string, error) {
	var sb strings.Builder
	for i, s := range b {
		text, err := s.Inline()
		if err != nil {
			return "", fmt.Errorf("statement %d: %w", i, err)
		}
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(text + ";")
	}
	return sb.String(), nil
}

// SplitTags splits a comma separated tag list. Tokens are trimmed and empty
// tokens are skipped, so "a, b,,  c ," yields [a b c].
func SplitTags(list string) []string {
	var tags []string
	for _, token := range strings.Split(list, ",") {
		if tag := strings.TrimSpace(token); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// TagUpsert builds, for every tag in list, an insert-or-ignore of the tag row
// followed by an insert-or-ignore of the link from primaryID to the tag.
// Running the batch twice leaves the same rows and raises no duplicate key
// error. A list without tags yields an empty batch.
func (b *Builder) TagUpsert(a Association, list string, primaryID Value) (Batch, error) {
	if err := checkPresent(a.PrimaryKeyColumn, primaryID); err != nil {
		return nil, err
	}

	tags := SplitTags(list)
	batch := make(Batch, 0, 2*len(tags))
	for _, tag := range tags {
		ensureTag, err := b.InsertIgnore(a.Secondary, Columns{{Name: a.SecondaryNameColumn, Value: String(tag)}})
		if err != nil {
			return nil, err
		}
		ensureLink, err := b.InsertIgnore(a.JoinTable, a.Link(primaryID, String(tag)))
		if err != nil {
			return nil, err
		}
		batch = append(batch, ensureTag, ensureLink)
	}
	return batch, nil
}

// TagLink creates one link, creating the tag first if it does not exist. The
// link itself is a plain insert, so linking the same pair twice fails in the
// store.
func (b *Builder) TagLink(a Association, tag string, primaryID Value) (Batch, error) {
	if err := checkPresent(a.PrimaryKeyColumn, primaryID); err != nil {
		return nil, err
	}
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, fmt.Errorf("%w: empty %s name", ErrInvalidValueType, a.Secondary)
	}

	ensureTag, err := b.InsertIgnore(a.Secondary, Columns{{Name: a.SecondaryNameColumn, Value: String(tag)}})
	if err != nil {
		return nil, err
	}
	link, err := b.Insert(a.JoinTable, a.Link(primaryID, String(tag)))
	if err != nil {
		return nil, err
	}
	return Batch{ensureTag, link}, nil
}
