package models

import (
	"slices"
	"sort"
)

// Vocabulary is an allowed-value list. Model output is filtered against it.
type Vocabulary struct {
	values []string
	index  map[string]struct{}
}

// NewVocabulary builds a vocabulary, optionally sorted
func NewVocabulary(values []string, sorted bool) Vocabulary {
	v := Dedupe(values)
	if sorted {
		sort.Strings(v)
	}
	index := make(map[string]struct{}, len(v))
	for _, s := range v {
		index[s] = struct{}{}
	}
	return Vocabulary{values: v, index: index}
}

// Values returns a copy of the allowed values in catalog order
func (v Vocabulary) Values() []string {
	return slices.Clone(v.values)
}

// Contains reports whether the value is allowed
func (v Vocabulary) Contains(value string) bool {
	_, ok := v.index[value]
	return ok
}

// First returns the first allowed value
func (v Vocabulary) First() string {
	if len(v.values) == 0 {
		return ""
	}
	return v.values[0]
}

// Filter keeps the allowed members of values, deduplicated, in input order
func (v Vocabulary) Filter(values []string) []string {
	out := make([]string, 0, len(values))
	for _, s := range Dedupe(values) {
		if v.Contains(s) {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of allowed values
func (v Vocabulary) Len() int {
	return len(v.values)
}

// InstrumentCategories groups the instrument vocabulary for display
var InstrumentCategories = []InstrumentCategory{
	{Name: "Keyboards & Synths", Instruments: []string{"Accordion", "Acoustic Piano", "Analog Synth", "Arpeggiator", "Celesta", "Electric Piano", "FM Synth", "Grand Piano", "Harpsichord", "Mellotron", "Modular Synth", "Organ", "Piano", "Sampler", "Synth Bass", "Synth Lead", "Synth Pad", "Synthesizer", "TB-303", "Theremin", "Vocal Chops"}},
	{Name: "Guitars & Bass", Instruments: []string{"Acoustic Guitar", "Banjo", "Bass Guitar", "Classical Guitar", "Electric Guitar", "Lute", "Mandolin", "Oud", "Shamisen", "Sitar", "Ukulele"}},
	{Name: "Drums & Percussion", Instruments: []string{"Acoustic Drums", "Beatboxing", "Bongos", "Cajon", "Congas", "Cowbell", "Cymbals", "Djembe", "Drum Machine", "Drums", "Glockenspiel", "Gong", "Maracas", "Marimba", "Steel Drums", "Tabla", "Tambourine", "Timpani", "TR-808", "TR-909", "Triangle", "Vibraphone", "Xylophone"}},
	{Name: "Orchestral & Strings", Instruments: []string{"Brass Section", "Cello", "Choir", "Double Bass", "French Horn", "Harp", "String Section", "Trombone", "Trumpet", "Tuba", "Viola", "Violin"}},
	{Name: "Wind Instruments", Instruments: []string{"Bagpipes", "Bassoon", "Clarinet", "Didgeridoo", "Flute", "Harmonica", "Oboe", "Piccolo", "Recorder", "Saxophone"}},
	{Name: "World & Folk", Instruments: []string{"Balafon", "Erhu", "Guzheng", "Handpan", "Kalimba", "Koto"}},
	{Name: "Unique & Vocal", Instruments: []string{"Operatic Vocals", "Scat Singing", "Turntables"}},
}

// InstrumentCategory is a named group of instruments
type InstrumentCategory struct {
	Name        string   `json:"name"`
	Instruments []string `json:"instruments"`
}

var (
	Genres = NewVocabulary([]string{
		"8-bit", "Acid Jazz", "Acoustic", "Afrobeat", "Alternative Rock", "Ambient", "Art Rock", "Baroque", "Bebop", "Bluegrass", "Blues", "Bossa Nova", "Breakbeat", "Chamber Music", "Chiptune", "Choir", "City Pop", "Classical", "Comedy Rock", "Contemporary", "Country", "Cumbia", "Dance", "Darkwave", "Death Metal", "Delta Blues", "Disco", "Doo-wop", "Downtempo", "Dream Pop", "Drill", "Drum and Bass", "Dub", "Dubstep", "EDM", "Electro Swing", "Electronic", "Emo", "Eurodance", "Experimental", "Flamenco", "Folk", "Funk", "Future Bass", "Garage Rock", "Glitch", "Gospel", "Gothic Rock", "Grime", "Grunge", "Hard Rock", "Hardcore", "Hardstyle", "Heavy Metal", "Hip Hop", "House", "IDM", "Indie", "Industrial", "J-Pop", "J-Rock", "Jazz", "Jungle", "K-Pop", "Kawaii Future Bass", "Latin", "Lo-fi Hip Hop", "Lofi", "Mambo", "Mariachi", "Medieval", "Metal", "Minimalist", "Motown", "Neo-soul", "New Wave", "Noise Rock", "Nu-Metal", "Opera", "Orchestral", "Phonk", "Polka", "Pop", "Post-Rock", "Power Metal", "Progressive Rock", "Psychedelic Rock", "Punk", "R&B", "Ragtime", "Reggae", "Reggaeton", "Renaissance", "Rock", "Salsa", "Samba", "Sea Shanty", "Shoegaze", "Ska", "Soul", "Stoner Rock", "Surf Rock", "Swing", "Symphonic Metal", "Synth-pop", "Synthwave", "Tango", "Techno", "Trance", "Trap", "Trip Hop", "Vaporwave", "Video Game Music", "World",
	}, true)

	Moods = NewVocabulary([]string{
		"Relaxing", "Epic", "Happy", "Sad", "Energetic", "Melancholic", "Hopeful", "Dark", "Peaceful", "Mysterious", "Romantic", "Uplifting", "Anxious", "Calm", "Chaotic", "Cinematic", "Dreamy", "Eerie", "Euphoric", "Gloomy", "Groovy", "Intense", "Joyful", "Nostalgic", "Ominous", "Playful", "Powerful", "Serene", "Somber", "Spiritual", "Suspenseful", "Tense", "Thoughtful", "Triumphant", "Whimsical",
	}, false)

	Vocals = NewVocabulary([]string{
		"[instrumental]", "[no vocals]", "Male Vocals", "Female Vocals", "Choir", "Operatic Vocals", "Whispering", "Spoken Word", "Rap", "Screaming", "Vocal Chops", "Harmonized Vocals", "Children's Choir", "Robot Voice",
	}, false)

	Chords = NewVocabulary([]string{
		ChordsNone,
		"I-V-vi-IV (Pop Anthem)",
		"vi-IV-I-V (Sensitive Pop)",
		"I-IV-V-I (Classic Rock)",
		"ii-V-I (Jazz Standard)",
		"i-VI-III-VII (Epic Minor)",
		"i-VII-VI-V (Andalusian Cadence)",
		"I-vi-ii-V (Doo-Wop)",
		"I-IV-I-V (12-Bar Blues)",
	}, true)

	Techniques = NewVocabulary([]string{
		"Ambient Textures", "Arpeggiated", "Atmospheric", "Call and Response", "Catchy Melodies", "Clean Production", "Counterpoint Melody", "Crisp Mix", "Dissonant Chords", "Driving Rhythm", "Dynamic Builds", "Echo Delay", "Ethereal Pads", "Flanger", "Foley Sounds", "Gated Reverb", "Glitchy Vocals", "Granular Synthesis", "Gritty Distortion", "Heavy Autotune", "Heavy Reverb", "Intricate Arrangements", "Lo-fi Aesthetic", "Lush Harmonies", "Minimalist Repetition", "Orchestral Swells", "Panning Effects", "Phasing", "Polyrhythmic", "Punchy Drums", "Reverse Cymbals", "Sidechain Compression", "Slick Bassline", "Slow Tempo", "Stereo Widening", "Syncopated Rhythm", "Tape Saturation", "Twangy Guitar", "Upbeat Tempo", "Wall of Sound", "Warm Analog Synths",
	}, true)

	SoundDesigns = NewVocabulary([]string{
		"808 Sub Bass", "Ambient Soundscapes", "Arp Sequence", "Arturia Piano", "Bandpass Filter", "Bitcrushed", "Diva", "Field Recordings", "FM Synthesis Pad", "FM8", "Found Sounds", "Glitch Effects", "Granular Texture", "Industrial Noise", "Kontakt Noire Piano", "Low-pass Filter Sweep", "Massive X", "Mastering", "Moog Subsquent", "Nature Sounds", "Nexus 4", "Noise Gate", "Omnisphere", "Pluck Synth", "Reese Bass", "Reverb Tail", "Reverse Reverb", "Risers/Sweeps", "Serum", "Spire", "Subtractive Synthesis", "Supersaw Lead", "Trance Gate", "Vinyl Crackle", "Warped Vocal Sample", "Wavetable Synthesis", "Wobbly Bass",
	}, true)

	SectionTypes = NewVocabulary([]string{
		"Intro", "Verse", "Pre-Chorus", "Chorus", "Post-Chorus", "Bridge", "Breakdown", "Build-up", "Drop", "Instrumental Solo", "Interlude", "Hook", "Outro",
	}, false)

	Instruments = NewVocabulary(flattenCategories(InstrumentCategories), true)

	VibePresets = NewVocabulary(presetNames(), true)
)

// TermsToExclude is the negative-prompt text clients copy next to a prompt
const TermsToExclude = "bad quality, out of tune, noisy, low fidelity, amateur, abrupt ending, static, distortion, mumbling, gibberish vocals, excessive reverb, clashing elements, generic, uninspired, robotic, artificial sound, metallic, harsh, shrill, muddy, distorted bass, weak drums, lifeless, monotone, repetitive, boring, flat, lifeless, thin, hollow, overproduced, underproduced"

// ScalarVocabulary returns the vocabulary constraining a scalar field, if any
func ScalarVocabulary(f Field) (Vocabulary, bool) {
	switch f {
	case FieldGenre:
		return Genres, true
	case FieldMood:
		return Moods, true
	case FieldVocals:
		return Vocals, true
	case FieldChords:
		return Chords, true
	case FieldVibePreset:
		return VibePresets, true
	default:
		return Vocabulary{}, false
	}
}

// ListVocabulary returns the vocabulary constraining a list field
func ListVocabulary(f Field) (Vocabulary, bool) {
	switch f {
	case FieldInstruments:
		return Instruments, true
	case FieldTechniques:
		return Techniques, true
	case FieldSoundDesign:
		return SoundDesigns, true
	default:
		return Vocabulary{}, false
	}
}

// InitialFormState is the state a brand new client starts from
func InitialFormState() FormState {
	return FormState{
		Genre:         "Lo-fi Hip Hop",
		Mood:          "Relaxing",
		Instruments:   []string{"Electric Piano", "Drum Machine", "Synth Bass", "Sampler"},
		Vocals:        "[instrumental]",
		Theme:         "A quiet, rainy night in a cozy city apartment, watching the world go by from the window.",
		BPM:           "85",
		Influences:    "Nujabes, J Dilla",
		Techniques:    []string{"Slow Tempo", "Lo-fi Aesthetic", "Minimalist Repetition"},
		SoundDesign:   []string{"Vinyl Crackle", "Warped Vocal Sample"},
		Lyrics:        LyricsPlaceholderPrefix + "\nRaindrops on the glass...\n[Chorus]\nCity lights blur to a stream...",
		VibePreset:    "",
		Chords:        ChordsNone,
		SongStructure: []SongStructureItem{},
	}
}

// EmptyFormState is the complete default used by "clear" and as the base
// that decoded sessions are merged onto
func EmptyFormState() FormState {
	return FormState{
		Genre:         Genres.First(),
		Mood:          Moods.First(),
		Instruments:   []string{},
		Vocals:        Vocals.First(),
		BPM:           "120",
		Techniques:    []string{},
		SoundDesign:   []string{},
		Chords:        ChordsNone,
		SongStructure: []SongStructureItem{},
	}
}

func flattenCategories(categories []InstrumentCategory) []string {
	var all []string
	for _, c := range categories {
		all = append(all, c.Instruments...)
	}
	return all
}
