package models

import "sort"

// PresetConfig is a named partial FormState. A nil list means the preset does not
// carry that field; an empty scalar likewise.
type PresetConfig struct {
	Genre       string   `json:"genre,omitempty"`
	Mood        string   `json:"mood,omitempty"`
	Instruments []string `json:"instruments,omitempty"`
	Techniques  []string `json:"techniques,omitempty"`
	SoundDesign []string `json:"soundDesign,omitempty"`
}

// Clone returns a deep copy, preserving nil lists
func (p PresetConfig) Clone() PresetConfig {
	out := p
	if p.Instruments != nil {
		out.Instruments = append([]string{}, p.Instruments...)
	}
	if p.Techniques != nil {
		out.Techniques = append([]string{}, p.Techniques...)
	}
	if p.SoundDesign != nil {
		out.SoundDesign = append([]string{}, p.SoundDesign...)
	}
	return out
}

// LookupPreset returns a copy of the named preset
func LookupPreset(name string) (PresetConfig, bool) {
	p, ok := presetTable[name]
	if !ok {
		return PresetConfig{}, false
	}
	return p.Clone(), true
}

// Presets returns a copy of the whole preset table
func Presets() map[string]PresetConfig {
	out := make(map[string]PresetConfig, len(presetTable))
	for name, p := range presetTable {
		out[name] = p.Clone()
	}
	return out
}

func presetNames() []string {
	names := make([]string, 0, len(presetTable))
	for name := range presetTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Some presets name values that are outside the vocabularies (e.g. "Orchestral" as an
// instrument). They are kept as authored; only model output is filtered.
var presetTable = map[string]PresetConfig{
	"Lofi Chill": {
		Genre:       "Lo-fi Hip Hop",
		Mood:        "Relaxing",
		Instruments: []string{"Electric Piano", "Drum Machine", "Synth Bass", "Sampler", "Acoustic Guitar"},
		Techniques:  []string{"Slow Tempo", "Lo-fi Aesthetic", "Minimalist Repetition", "Sidechain Compression"},
		SoundDesign: []string{"Vinyl Crackle", "Warped Vocal Sample", "Reverb Tail"},
	},
	"80s Synthwave Rider": {
		Genre:       "Synthwave",
		Mood:        "Nostalgic",
		Instruments: []string{"Analog Synth", "Drum Machine", "Synth Bass", "Arpeggiator", "Electric Guitar"},
		Techniques:  []string{"Driving Rhythm", "Gated Reverb", "Warm Analog Synths", "Upbeat Tempo"},
		SoundDesign: []string{"FM Synthesis Pad", "Reverb Tail", "Risers/Sweeps"},
	},
	"Epic Cinematic Trailer": {
		Genre:       "Orchestral",
		Mood:        "Epic",
		Instruments: []string{"Brass Section", "String Section", "Timpani", "Choir", "Gong"},
		Techniques:  []string{"Orchestral Swells", "Dynamic Builds", "Wall of Sound", "Intricate Arrangements"},
		SoundDesign: []string{"Risers/Sweeps", "808 Sub Bass", "Reverse Cymbals"},
	},
	"Acoustic Coffeehouse": {
		Genre:       "Acoustic",
		Mood:        "Hopeful",
		Instruments: []string{"Acoustic Guitar", "Piano", "Cajon", "Double Bass", "Cello"},
		Techniques:  []string{"Clean Production", "Lush Harmonies", "Slow Tempo", "Catchy Melodies"},
		SoundDesign: []string{"Reverb Tail", "Kontakt Noire Piano", "Field Recordings"},
	},
	"Dark Techno Club": {
		Genre:       "Techno",
		Mood:        "Intense",
		Instruments: []string{"Drum Machine", "Synth Bass", "Synthesizer", "Sampler", "TB-303"},
		Techniques:  []string{"Driving Rhythm", "Minimalist Repetition", "Sidechain Compression", "Syncopated Rhythm"},
		SoundDesign: []string{"Industrial Noise", "Low-pass Filter Sweep", "Reese Bass"},
	},
	"Trap Banger": {
		Genre:       "Trap",
		Mood:        "Energetic",
		Instruments: []string{"TR-808", "Synth Lead", "Sampler", "Synth Pad", "Vocal Chops"},
		Techniques:  []string{"Heavy Autotune", "Syncopated Rhythm", "Upbeat Tempo", "Slick Bassline"},
		SoundDesign: []string{"808 Sub Bass", "Risers/Sweeps", "Warped Vocal Sample"},
	},
	"Reggaeton Beach Party": {
		Genre:       "Reggaeton",
		Mood:        "Happy",
		Instruments: []string{"Drum Machine", "Synth Bass", "Synthesizer", "Marimba", "Brass Section"},
		Techniques:  []string{"Driving Rhythm", "Syncopated Rhythm", "Upbeat Tempo", "Catchy Melodies"},
		SoundDesign: []string{"Nexus 4", "Risers/Sweeps", "Reverb Tail"},
	},
	"UNDERTALE": {
		Genre:       "Video Game Music",
		Mood:        "Nostalgic",
		Instruments: []string{"Piano", "Synthesizer", "String Section", "Acoustic Drums", "Synth Lead"},
		Techniques:  []string{"Catchy Melodies", "Dynamic Builds", "Minimalist Repetition", "Arpeggiated"},
		SoundDesign: []string{"Bitcrushed", "Wavetable Synthesis"},
	},
	"Stardew Valley": {
		Genre:       "Folk",
		Mood:        "Peaceful",
		Instruments: []string{"Acoustic Guitar", "Flute", "Piano", "String Section", "Marimba"},
		Techniques:  []string{"Lush Harmonies", "Slow Tempo", "Catchy Melodies", "Clean Production"},
		SoundDesign: []string{"Nature Sounds", "Reverb Tail"},
	},
	"Final Fantasy": {
		Genre:       "Orchestral",
		Mood:        "Epic",
		Instruments: []string{"Orchestral", "Choir", "Piano", "Harp", "Timpani"},
		Techniques:  []string{"Orchestral Swells", "Dynamic Builds", "Intricate Arrangements", "Counterpoint Melody"},
		SoundDesign: []string{"Ethereal Pads", "Reverb Tail"},
	},
	"The Legend of Zelda": {
		Genre:       "Orchestral",
		Mood:        "Triumphant",
		Instruments: []string{"Orchestral", "Flute", "Harp", "French Horn", "Timpani"},
		Techniques:  []string{"Orchestral Swells", "Catchy Melodies", "Dynamic Builds"},
		SoundDesign: []string{"Ambient Soundscapes", "Risers/Sweeps"},
	},
	"Cyberpunk 2077": {
		Genre:       "Synthwave",
		Mood:        "Dark",
		Instruments: []string{"Synthesizer", "Drum Machine", "Synth Bass", "Sampler", "Electric Guitar"},
		Techniques:  []string{"Driving Rhythm", "Gritty Distortion", "Sidechain Compression", "Syncopated Rhythm"},
		SoundDesign: []string{"Industrial Noise", "Glitch Effects", "Reese Bass", "Subtractive Synthesis"},
	},
	"DOOM": {
		Genre:       "Heavy Metal",
		Mood:        "Intense",
		Instruments: []string{"Electric Guitar", "Drum Machine", "Synth Bass", "Modular Synth"},
		Techniques:  []string{"Gritty Distortion", "Driving Rhythm", "Polyrhythmic", "Wall of Sound"},
		SoundDesign: []string{"Industrial Noise", "Bitcrushed", "Glitch Effects"},
	},
	"Persona 5": {
		Genre:       "Acid Jazz",
		Mood:        "Groovy",
		Instruments: []string{"Bass Guitar", "Electric Guitar", "Drums", "Piano", "String Section"},
		Techniques:  []string{"Funk", "Slick Bassline", "Catchy Melodies", "Upbeat Tempo"},
		SoundDesign: []string{"Clean Production", "Warped Vocal Sample"},
	},
	"Celeste": {
		Genre:       "Electronic",
		Mood:        "Hopeful",
		Instruments: []string{"Piano", "Synthesizer", "Synth Pad", "Drum Machine", "Arpeggiator"},
		Techniques:  []string{"Atmospheric", "Dynamic Builds", "Ethereal Pads", "Catchy Melodies"},
		SoundDesign: []string{"Granular Synthesis", "Reverb Tail"},
	},
	"Minecraft": {
		Genre:       "Ambient",
		Mood:        "Calm",
		Instruments: []string{"Piano", "String Section", "Synth Pad", "Celesta"},
		Techniques:  []string{"Minimalist Repetition", "Slow Tempo", "Lush Harmonies"},
		SoundDesign: []string{"Ambient Soundscapes", "Reverb Tail"},
	},
	"Red Dead Redemption 2": {
		Genre:       "Country",
		Mood:        "Somber",
		Instruments: []string{"Acoustic Guitar", "Banjo", "Violin", "Harmonica", "Double Bass"},
		Techniques:  []string{"Folk", "Atmospheric", "Slow Tempo", "Clean Production"},
		SoundDesign: []string{"Field Recordings", "Nature Sounds"},
	},
	"The Witcher 3": {
		Genre:       "Folk",
		Mood:        "Mysterious",
		Instruments: []string{"Lute", "Viola", "Flute", "Choir", "Drums"},
		Techniques:  []string{"Medieval", "Orchestral Swells", "Ethereal Pads", "Lush Harmonies"},
		SoundDesign: []string{"Ambient Soundscapes", "Foley Sounds"},
	},
	"Skyrim": {
		Genre:       "Orchestral",
		Mood:        "Epic",
		Instruments: []string{"Choir", "Timpani", "French Horn", "Cello", "Brass Section"},
		Techniques:  []string{"Orchestral Swells", "Driving Rhythm", "Wall of Sound", "Dynamic Builds"},
		SoundDesign: []string{"Reverb Tail", "Risers/Sweeps"},
	},
	"NieR: Automata": {
		Genre:       "Orchestral",
		Mood:        "Melancholic",
		Instruments: []string{"String Section", "Choir", "Piano", "Acoustic Guitar", "Vocal Chops"},
		Techniques:  []string{"Ethereal Pads", "Dynamic Builds", "Lush Harmonies", "Intricate Arrangements"},
		SoundDesign: []string{"Glitch Effects", "Reverb Tail", "Warped Vocal Sample"},
	},
	"Hollow Knight": {
		Genre:       "Chamber Music",
		Mood:        "Gloomy",
		Instruments: []string{"Piano", "Violin", "Cello", "Harpsichord", "Choir"},
		Techniques:  []string{"Atmospheric", "Minimalist Repetition", "Counterpoint Melody", "Intricate Arrangements"},
		SoundDesign: []string{"Heavy Reverb", "Reverb Tail"},
	},
	"Dragon Ball Z": {
		Genre:       "Hard Rock",
		Mood:        "Energetic",
		Instruments: []string{"Electric Guitar", "Synth Lead", "Brass Section", "Drums", "Synth Bass"},
		Techniques:  []string{"Driving Rhythm", "Upbeat Tempo", "Catchy Melodies", "Punchy Drums"},
		SoundDesign: []string{"Gritty Distortion", "Sidechain Compression"},
	},
	"Dragon Ball Z Dokkan Battle": {
		Genre:       "J-Rock",
		Mood:        "Triumphant",
		Instruments: []string{"Synthesizer", "Electric Guitar", "Drum Machine", "Arpeggiator"},
		Techniques:  []string{"Electronic", "Upbeat Tempo", "Driving Rhythm", "Catchy Melodies"},
		SoundDesign: []string{"Supersaw Lead", "Sidechain Compression"},
	},
	"Studio Ghibli": {
		Genre:       "Orchestral",
		Mood:        "Whimsical",
		Instruments: []string{"Piano", "String Section", "Acoustic Guitar", "Flute", "Celesta"},
		Techniques:  []string{"Lush Harmonies", "Orchestral Swells", "Clean Production", "Catchy Melodies"},
		SoundDesign: []string{"Ethereal Pads", "Reverb Tail"},
	},
	"Cowboy Bebop": {
		Genre:       "Bebop",
		Mood:        "Groovy",
		Instruments: []string{"Saxophone", "Trumpet", "Double Bass", "Drums", "Piano"},
		Techniques:  []string{"Jazz", "Blues", "Slick Bassline", "Syncopated Rhythm"},
		SoundDesign: []string{"Clean Production", "Tape Saturation"},
	},
	"Samurai Champloo": {
		Genre:       "Lo-fi Hip Hop",
		Mood:        "Relaxing",
		Instruments: []string{"Sampler", "Turntables", "Drum Machine", "Flute", "Shamisen"},
		Techniques:  []string{"Minimalist Repetition", "Slow Tempo", "Sidechain Compression"},
		SoundDesign: []string{"Vinyl Crackle", "Warped Vocal Sample"},
	},
	"Steven Universe": {
		Genre:       "Indie",
		Mood:        "Hopeful",
		Instruments: []string{"Ukulele", "Piano", "Synth Pad", "Bass Guitar", "Acoustic Drums"},
		Techniques:  []string{"Pop", "Catchy Melodies", "Lush Harmonies", "Clean Production"},
		SoundDesign: []string{"Warm Analog Synths", "Reverb Tail"},
	},
	"Adventure Time": {
		Genre:       "Alternative Rock",
		Mood:        "Playful",
		Instruments: []string{"Ukulele", "Synthesizer", "Acoustic Guitar", "Vocal Chops"},
		Techniques:  []string{"Chiptune", "Lo-fi Aesthetic", "Catchy Melodies", "Upbeat Tempo"},
		SoundDesign: []string{"Bitcrushed", "Glitchy Vocals"},
	},
	"Attack on Titan": {
		Genre:       "Symphonic Metal",
		Mood:        "Epic",
		Instruments: []string{"Orchestral", "Choir", "Timpani", "Electric Guitar", "French Horn"},
		Techniques:  []string{"Wall of Sound", "Dynamic Builds", "Orchestral Swells", "Driving Rhythm"},
		SoundDesign: []string{"Risers/Sweeps", "Heavy Reverb"},
	},
	"Naruto": {
		Genre:       "J-Rock",
		Mood:        "Energetic",
		Instruments: []string{"Shamisen", "Flute", "Electric Guitar", "Drums", "String Section"},
		Techniques:  []string{"Driving Rhythm", "Catchy Melodies", "Upbeat Tempo"},
		SoundDesign: []string{"Clean Production", "Punchy Drums"},
	},
	"JoJo's Bizarre Adventure": {
		Genre:       "Funk",
		Mood:        "Energetic",
		Instruments: []string{"Electric Guitar", "Saxophone", "Synth Lead", "Drums", "Bass Guitar"},
		Techniques:  []string{"Rock", "Electronic", "Upbeat Tempo", "Driving Rhythm"},
		SoundDesign: []string{"Gritty Distortion", "Punchy Drums"},
	},
	"Looney Tunes": {
		Genre:       "Orchestral",
		Mood:        "Chaotic",
		Instruments: []string{"Xylophone", "Trombone", "Clarinet", "Timpani", "Brass Section"},
		Techniques:  []string{"Classical", "Dynamic Builds", "Polyrhythmic", "Upbeat Tempo"},
		SoundDesign: []string{"Foley Sounds", "Panning Effects"},
	},
	"Blade Runner": {
		Genre:       "Synthwave",
		Mood:        "Dark",
		Instruments: []string{"Analog Synth", "Synth Pad", "Drum Machine", "Saxophone", "Arpeggiator"},
		Techniques:  []string{"Atmospheric", "Slow Tempo", "Heavy Reverb", "Warm Analog Synths"},
		SoundDesign: []string{"FM Synthesis Pad", "Reverb Tail", "Risers/Sweeps"},
	},
	"Chainsaw Man": {
		Genre:       "Industrial",
		Mood:        "Chaotic",
		Instruments: []string{"Drum Machine", "Synth Bass", "Electric Guitar", "Sampler"},
		Techniques:  []string{"Noise Rock", "Gritty Distortion", "Driving Rhythm", "Minimalist Repetition"},
		SoundDesign: []string{"Industrial Noise", "Glitch Effects", "Bitcrushed"},
	},
	"Ghost in the Shell": {
		Genre:       "Ambient",
		Mood:        "Mysterious",
		Instruments: []string{"Synth Pad", "Choir", "Sampler", "Drum Machine", "Bells"},
		Techniques:  []string{"Atmospheric", "Ethereal Pads", "Slow Tempo", "Polyrhythmic"},
		SoundDesign: []string{"Ambient Soundscapes", "Reverb Tail", "Granular Synthesis"},
	},
}
