package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SELab-2/Dwengo-4-sub000/internal/validation"
	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

func validMeta() domain.PathMetadata {
	return domain.PathMetadata{
		Title:       "Binary numbers",
		Description: "Counting with two digits",
		Language:    "en",
	}
}

func TestValidateMetadata(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*domain.PathMetadata)
		fields []string
	}{
		{name: "valid", modify: func(*domain.PathMetadata) {}},
		{name: "valid with image", modify: func(m *domain.PathMetadata) { m.Image = "https://dwengo.org/img.png" }},
		{name: "regional language", modify: func(m *domain.PathMetadata) { m.Language = "nl-BE" }},
		{name: "blank title", modify: func(m *domain.PathMetadata) { m.Title = "   " }, fields: []string{"title"}},
		{name: "missing description", modify: func(m *domain.PathMetadata) { m.Description = "" }, fields: []string{"description"}},
		{name: "bad language", modify: func(m *domain.PathMetadata) { m.Language = "not a language" }, fields: []string{"language"}},
		{name: "bad image", modify: func(m *domain.PathMetadata) { m.Image = "img.png" }, fields: []string{"image"}},
		{
			name:   "several fields",
			modify: func(m *domain.PathMetadata) { m.Title = ""; m.Language = "" },
			fields: []string{"title", "language"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := validMeta()
			tt.modify(&meta)

			err := validation.ValidateMetadata(meta)
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, validation.IsValidation(err))

			var ve *validation.Error
			require.ErrorAs(t, err, &ve)
			got := make([]string, 0, len(ve.Fields))
			for _, f := range ve.Fields {
				got = append(got, f.Field)
				assert.NotEmpty(t, f.Message)
			}
			assert.ElementsMatch(t, tt.fields, got)
		})
	}
}

func TestError_Messages(t *testing.T) {
	meta := validMeta()
	meta.Title = "\t"

	err := validation.ValidateMetadata(meta)
	var ve *validation.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title cannot be blank", ve.Map()["title"])
	assert.Contains(t, err.Error(), "title cannot be blank")
}
