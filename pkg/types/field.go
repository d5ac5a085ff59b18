package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the value type of an editable field.
type Kind int

// Field kinds.
const (
	KindText Kind = iota
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Field describes one editable column of a Book. The ID is never a field.
type Field struct {
	Name string
	Kind Kind

	get func(Book) any
	set func(*Book, any) error
}

// Get returns the field's value on b.
func (f Field) Get(b Book) any {
	return f.get(b)
}

// Set assigns v to the field on b. Text fields take a string; bool fields
// take a bool or a string accepted by strconv.ParseBool. Any other value
// returns ErrValidation and leaves b unchanged.
func (f Field) Set(b *Book, v any) error {
	return f.set(b, v)
}

// Editable fields in display order.
var (
	FieldTitle = Field{
		Name: "title",
		Kind: KindText,
		get:  func(b Book) any { return b.Title },
		set:  textSetter("title", func(b *Book, s string) { b.Title = s }),
	}
	FieldAuthor = Field{
		Name: "author",
		Kind: KindText,
		get:  func(b Book) any { return b.Author },
		set:  textSetter("author", func(b *Book, s string) { b.Author = s }),
	}
	FieldGenre = Field{
		Name: "genre",
		Kind: KindText,
		get:  func(b Book) any { return b.Genre },
		set:  textSetter("genre", func(b *Book, s string) { b.Genre = s }),
	}
	FieldFavorite = Field{
		Name: "favorite",
		Kind: KindBool,
		get:  func(b Book) any { return b.Favorite },
		set:  boolSetter("favorite", func(b *Book, v bool) { b.Favorite = v }),
	}
)

var fields = []Field{FieldTitle, FieldAuthor, FieldGenre, FieldFavorite}

// Fields returns the editable fields in display order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// LookupField resolves a field by name, ignoring case.
// Returns ErrUnknownField if no field has that name.
func LookupField(name string) (Field, error) {
	for _, f := range fields {
		if strings.EqualFold(f.Name, strings.TrimSpace(name)) {
			return f, nil
		}
	}
	return Field{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

func textSetter(name string, assign func(*Book, string)) func(*Book, any) error {
	return func(b *Book, v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: %s expects text, got %T", ErrValidation, name, v)
		}
		assign(b, s)
		return nil
	}
}

func boolSetter(name string, assign func(*Book, bool)) func(*Book, any) error {
	return func(b *Book, v any) error {
		switch val := v.(type) {
		case bool:
			assign(b, val)
			return nil
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(val))
			if err != nil {
				return fmt.Errorf("%w: %s expects true or false, got %q", ErrValidation, name, val)
			}
			assign(b, parsed)
			return nil
		default:
			return fmt.Errorf("%w: %s expects bool, got %T", ErrValidation, name, v)
		}
	}
}
