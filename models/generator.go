package models

// PasswordOptions configures the password generator.
type PasswordOptions struct {
	Length           int  `json:"length"`
	IncludeUppercase bool `json:"include_uppercase"`
	IncludeLowercase bool `json:"include_lowercase"`
	IncludeNumbers   bool `json:"include_numbers"`
	IncludeSymbols   bool `json:"include_symbols"`
	ExcludeSimilar   bool `json:"exclude_similar"`
	ExcludeAmbiguous bool `json:"exclude_ambiguous"`
}

// PasswordStrength is a heuristic score of a password.
type PasswordStrength struct {
	// Score is in [0,4], 0 being the weakest.
	Score    int      `json:"score"`
	Label    string   `json:"label"`
	Color    string   `json:"color"`
	Feedback []string `json:"feedback"`
}

// GeneratedPassword is the result of a generation request.
type GeneratedPassword struct {
	Password string           `json:"password"`
	Strength PasswordStrength `json:"strength"`
	Entropy  float64          `json:"entropy"`
}

// OptionsValidation reports whether a set of options is acceptable.
type OptionsValidation struct {
	IsValid bool   `json:"is_valid"`
	Error   string `json:"error,omitempty"`
}

// StrengthRequest asks for the strength of an arbitrary password.
type StrengthRequest struct {
	Password    string `json:"password"`
	CharsetSize int    `json:"charset_size"`
}
