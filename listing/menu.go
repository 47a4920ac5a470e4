package listing

type MenuItem struct {
	Title    string
	Route    string
	Children []MenuItem
}

var NavBar = []MenuItem{
	{Title: "Home", Route: "/"},
	{
		Title: "Buy",
		Route: "/search/buy",
		Children: []MenuItem{
			{Title: "Flats and apartments for sale", Route: "/search/buy?listing_type=flat"},
			{Title: "Duplexes for sale", Route: "/search/buy?listing_type=duplex"},
			{Title: "Office spaces for sale", Route: "/search/buy?listing_type=office+space"},
			{Title: "All properties for sale", Route: "/search/buy"},
		},
	},
	{
		Title: "Rent",
		Route: "/search/rent",
		Children: []MenuItem{
			{Title: "Flats and apartments for rent", Route: "/search/rent?listing_type=flat"},
			{Title: "Self-contained for rent", Route: "/search/rent?listing_type=self-contained"},
			{Title: "Office spaces for rent", Route: "/search/rent?listing_type=office+space"},
			{Title: "Land lease", Route: "/search/lease"},
			{Title: "All properties for rent", Route: "/search/rent"},
		},
	},
	{
		Title: "Share",
		Route: "/search/share",
		Children: []MenuItem{
			{Title: "Flats and apartments for share", Route: "/search/share?listing_type=flat"},
			{Title: "All properties for share", Route: "/search/share"},
		},
	},
}

var Other = []MenuItem{
	{Title: "Featured", Route: "/featured"},
	{Title: "Contact us", Route: "/contact"},
}

var Account = []MenuItem{
	{Title: "Sign up", Route: "/sign-up"},
	{Title: "Log in", Route: "/log-in"},
}
