package models

// SocialLinks holds the fixed set of outbound profile links
type SocialLinks struct {
	GitHub   string `json:"github" yaml:"github"`
	LinkedIn string `json:"linkedin" yaml:"linkedin"`
	Email    string `json:"email" yaml:"email"`
	Twitter  string `json:"twitter,omitempty" yaml:"twitter,omitempty"`
}

// Profile is the portfolio owner's public identity. There is exactly one.
type Profile struct {
	Name    string      `json:"name" yaml:"name"`
	Title   string      `json:"title" yaml:"title"`
	Bio     string      `json:"bio" yaml:"bio"`
	Email   string      `json:"email" yaml:"email"`
	Avatar  string      `json:"avatar" yaml:"avatar"`
	Socials SocialLinks `json:"socials" yaml:"socials"`
}
