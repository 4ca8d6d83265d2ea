package mapper

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Fixture types covering nested objects, lists of nested objects, and scalar
// wrapper types.

type author struct {
	Name string
}

func (a *author) Attributes() map[string]any {
	return map[string]any{"name": a.Name}
}

type chapter struct {
	Number float64
}

func (c *chapter) Attributes() map[string]any {
	return map[string]any{"number": c.Number}
}

type isbn struct {
	Code string
}

type book struct {
	Title    string
	Author   *author
	ISBN     *isbn
	Chapters []*chapter
}

func (b *book) Attributes() map[string]any {
	chapters := make([]any, len(b.Chapters))
	for i, c := range b.Chapters {
		chapters[i] = c
	}
	return map[string]any{
		"title":    b.Title,
		"author":   b.Author,
		"isbn":     b.ISBN.Code,
		"chapters": chapters,
	}
}

func authorSchema() TypeSchema {
	return TypeSchema{
		Name: "author",
		New:  func() any { return &author{} },
		Set: func(target any, attribute string, value any) error {
			if attribute != "name" {
				return fmt.Errorf("author has no attribute %q", attribute)
			}
			target.(*author).Name = value.(string)
			return nil
		},
	}
}

func chapterSchema() TypeSchema {
	return TypeSchema{
		Name: "chapter",
		New:  func() any { return &chapter{} },
		Set: func(target any, attribute string, value any) error {
			if attribute != "number" {
				return fmt.Errorf("chapter has no attribute %q", attribute)
			}
			target.(*chapter).Number = value.(float64)
			return nil
		},
	}
}

func isbnSchema() TypeSchema {
	return TypeSchema{
		Name: "isbn",
		New:  func() any { return &isbn{} },
		Set: func(target any, attribute string, value any) error {
			target.(*isbn).Code = value.(string)
			return nil
		},
		FromScalar: func(value any) (any, error) {
			s, ok := value.(string)
			if !ok {
				return nil, &ValueError{Message: fmt.Sprintf("isbn must be a string, received %T", value)}
			}
			return &isbn{Code: s}, nil
		},
	}
}

func bookSchema() TypeSchema {
	return TypeSchema{
		Name: "book",
		New:  func() any { return &book{} },
		Set: func(target any, attribute string, value any) error {
			b := target.(*book)
			switch attribute {
			case "title":
				b.Title = value.(string)
			case "author":
				b.Author = value.(*author)
			case "isbn":
				b.ISBN = value.(*isbn)
			case "chapters":
				items := value.([]any)
				b.Chapters = make([]*chapter, len(items))
				for i, item := range items {
					b.Chapters[i] = item.(*chapter)
				}
			default:
				return fmt.Errorf("book has no attribute %q", attribute)
			}
			return nil
		},
	}
}

func bookMapper() *Mapper {
	return ForType(bookSchema()).WithAttributeMappings(map[string]*Mapper{
		"author":   ForType(authorSchema()),
		"isbn":     ForType(isbnSchema()),
		"chapters": ForListOf(chapterSchema()),
	})
}

func bookDocument() map[string]any {
	return map[string]any{
		"title":  "Domain Modelling",
		"author": map[string]any{"name": "Bob"},
		"isbn":   "978-0134494166",
		"chapters": []any{
			map[string]any{"number": float64(1)},
			map[string]any{"number": float64(2)},
			map[string]any{"number": float64(3)},
		},
	}
}

func TestFromDocument_MapsNestedObjectsAndLists(t *testing.T) {
	mapped, err := bookMapper().FromDocument(bookDocument())

	assert.NoError(t, err)
	b, ok := mapped.(*book)
	assert.True(t, ok)
	assert.Equal(t, "Domain Modelling", b.Title)
	assert.Equal(t, "Bob", b.Author.Name)
	assert.Equal(t, "978-0134494166", b.ISBN.Code)
	assert.Len(t, b.Chapters, 3)
	assert.Equal(t, float64(2), b.Chapters[1].Number)
}

func TestFromDocument_ScalarWithMapperUsesSingleArgumentConstruction(t *testing.T) {
	mapped, err := bookMapper().FromDocument(bookDocument())

	assert.NoError(t, err)
	assert.Equal(t, &isbn{Code: "978-0134494166"}, mapped.(*book).ISBN)
}

func TestFromDocument_RaisesTypeErrorForNonDocumentInput(t *testing.T) {
	for _, input := range []any{1, "abc", []any{"hi", "bye"}} {
		_, err := bookMapper().FromDocument(input)

		var typeErr *TypeError
		assert.ErrorAs(t, err, &typeErr, "input %v", input)
	}
}

func TestFromDocument_RaisesValueErrorWhenListExpected(t *testing.T) {
	for _, notAList := range []any{1, "abc", map[string]any{"key": "value"}} {
		doc := bookDocument()
		doc["chapters"] = notAList

		_, err := bookMapper().FromDocument(doc)

		var valueErr *ValueError
		assert.ErrorAs(t, err, &valueErr, "input %v", notAList)
		assert.Contains(t, err.Error(), "configured to process a list")
	}
}

func TestFromDocument_NestedTypeErrorPropagates(t *testing.T) {
	doc := bookDocument()
	doc["chapters"] = []any{"not a chapter document"}

	_, err := bookMapper().FromDocument(doc)

	var typeErr *TypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestToDocument_IsRepresentationPreserving(t *testing.T) {
	b := &book{
		Title:    "Domain Modelling",
		Author:   &author{Name: "Bob"},
		ISBN:     &isbn{Code: "978-0134494166"},
		Chapters: []*chapter{{Number: 1}, {Number: 2}, {Number: 3}},
	}

	assert.Equal(t, bookDocument(), ToDocument(b))
}

func TestToDocument_RoundTrip(t *testing.T) {
	b := &book{
		Title:    "Domain Modelling",
		Author:   &author{Name: "Bob"},
		ISBN:     &isbn{Code: "978-0134494166"},
		Chapters: []*chapter{{Number: 1}, {Number: 2}},
	}

	mapped, err := bookMapper().FromDocument(ToDocument(b))

	assert.NoError(t, err)
	assert.Equal(t, b, mapped)
}

type displayOnly struct{}

func (displayOnly) String() string { return "display-form" }

func TestToDocument_RendersUnstructuredValuesAsDisplayForm(t *testing.T) {
	assert.Equal(t, "display-form", ToDocument(displayOnly{}))
	assert.Equal(t, "plain", ToDocument("plain"))
	assert.Equal(t, true, ToDocument(true))
	assert.Nil(t, ToDocument(nil))
}
