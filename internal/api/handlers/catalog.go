package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
)

type InstrumentCategoryResponse struct {
	Name        string   `json:"name"`
	Instruments []string `json:"instruments"`
}

// CatalogResponse lists every allowed value the client renders choices from
type CatalogResponse struct {
	Genres               []string                       `json:"genres"`
	Moods                []string                       `json:"moods"`
	Vocals               []string                       `json:"vocals"`
	Chords               []string                       `json:"chords"`
	Instruments          []string                       `json:"instruments"`
	InstrumentCategories []InstrumentCategoryResponse   `json:"instrumentCategories"`
	Techniques           []string                       `json:"techniques"`
	SoundDesign          []string                       `json:"soundDesign"`
	SectionTypes         []string                       `json:"sectionTypes"`
	VibePresets          []string                       `json:"vibePresets"`
	Presets              map[string]models.PresetConfig `json:"presets"`
	LockableFields       []models.Field                 `json:"lockableFields"`
	TermsToExclude       string                         `json:"termsToExclude"`
	InitialState         models.FormState               `json:"initialState"`
	EmptyState           models.FormState               `json:"emptyState"`
}

// GetCatalog returns the allowed-value lists, presets and exclusion terms
func GetCatalog(c *gin.Context) {
	categories := make([]InstrumentCategoryResponse, 0, len(models.InstrumentCategories))
	for _, cat := range models.InstrumentCategories {
		categories = append(categories, InstrumentCategoryResponse{
			Name:        cat.Name,
			Instruments: append([]string{}, cat.Instruments...),
		})
	}

	lockable := make([]models.Field, 0, len(models.AllFields))
	for _, f := range models.AllFields {
		if f.Lockable() {
			lockable = append(lockable, f)
		}
	}

	c.JSON(http.StatusOK, CatalogResponse{
		Genres:               models.Genres.Values(),
		Moods:                models.Moods.Values(),
		Vocals:               models.Vocals.Values(),
		Chords:               models.Chords.Values(),
		Instruments:          models.Instruments.Values(),
		InstrumentCategories: categories,
		Techniques:           models.Techniques.Values(),
		SoundDesign:          models.SoundDesigns.Values(),
		SectionTypes:         models.SectionTypes.Values(),
		VibePresets:          models.VibePresets.Values(),
		Presets:              models.Presets(),
		LockableFields:       lockable,
		TermsToExclude:       models.TermsToExclude,
		InitialState:         models.InitialFormState(),
		EmptyState:           models.EmptyFormState(),
	})
}
