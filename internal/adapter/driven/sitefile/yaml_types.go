package sitefile

// yamlSite is the decoding target for the site file. Pointer fields tell an
// absent key apart from an explicit empty value.
type yamlSite struct {
	SiteTitle       *string `yaml:"siteTitle"`
	SiteDescription *string `yaml:"siteDescription"`
	SiteKeywords    *string `yaml:"siteKeywords"`
	SiteURL         *string `yaml:"siteUrl"`
	SiteLanguage    *string `yaml:"siteLanguage"`

	Name     *string `yaml:"name"`
	Location *string `yaml:"location"`
	Email    *string `yaml:"email"`
	GitHub   *string `yaml:"github"`

	SocialMedia []yamlLink  `yaml:"socialMedia"`
	NavLinks    []yamlLink  `yaml:"navLinks"`
	NavHeight   *int        `yaml:"navHeight"`
	Colors      *yamlColors `yaml:"colors"`

	GoogleAnalyticsID  *string `yaml:"googleAnalyticsID"`
	GoogleVerification *string `yaml:"googleVerification"`
	TwitterHandle      *string `yaml:"twitterHandle"`
}

type yamlLink struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type yamlColors struct {
	Green    *string `yaml:"green"`
	Navy     *string `yaml:"navy"`
	DarkNavy *string `yaml:"darkNavy"`
}
