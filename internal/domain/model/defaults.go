package model

// defaultNavHeight is the fixed header height in pixels.
const defaultNavHeight = 100

// DefaultSiteSettings returns the built-in site settings. Each call returns a
// fresh value with its own slices.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		Metadata: SiteMetadata{
			Title:       "Tyler Riedal | Software Consultant",
			Description: "Tyler Riedal is a software consultant based in Saint Petersburg, FL who specializes in building exceptional websites, applications, and everything in between.",
			Keywords:    "Tyler Riedal, Tyler, Riedal, software engineer, front-end engineer, web developer, javascript, northeastern",
			URL:         "https://www.bluehelixsoftware.com",
			Language:    "en_US",
		},
		Owner: OwnerProfile{
			Name:     "Tyler Riedal",
			Location: "Saint Petersburg, FL",
			Email:    "riedalsolutions@gmail.com",
			GitHub:   "https://github.com/triedal",
		},
		SocialMedia: []SocialLink{
			{Name: "GitHub", URL: "https://github.com/triedal"},
			{Name: "Linkedin", URL: "https://www.linkedin.com/in/tylerriedal/"},
		},
		NavLinks: []NavLink{
			{Name: "About", URL: "/#about"},
			{Name: "Experience", URL: "/#jobs"},
			{Name: "Work", URL: "/#projects"},
			{Name: "Contact", URL: "/#contact"},
		},
		NavHeight: defaultNavHeight,
		Colors: ColorPalette{
			Green:    "#64ffda",
			Navy:     "#0a192f",
			DarkNavy: "#020c1b",
		},
	}
}
