package listing

import (
	"net/url"
	"strings"
)

type ShareLink struct {
	Name string
	URL  string
}

// ShareLinks builds the social share targets for a listing page.
func ShareLinks(pageURL, title string) []ShareLink {
	u := url.QueryEscape(pageURL)
	t := url.QueryEscape(title)

	return []ShareLink{
		{Name: "Facebook", URL: "https://www.facebook.com/sharer/sharer.php?u=" + u + "&quote=" + t},
		{Name: "X", URL: "https://twitter.com/intent/tweet?url=" + u + "&text=" + t},
		{Name: "WhatsApp", URL: "https://api.whatsapp.com/send?text=" + url.QueryEscape(title+" "+pageURL)},
		{Name: "Telegram", URL: "https://t.me/share/url?url=" + u + "&text=" + t},
		{Name: "LinkedIn", URL: "https://www.linkedin.com/sharing/share-offsite/?url=" + u},
		{Name: "Reddit", URL: "https://www.reddit.com/submit?url=" + u + "&title=" + t},
		{Name: "VK", URL: "https://vk.com/share.php?url=" + u + "&title=" + t},
		{Name: "Line", URL: "https://social-plugins.line.me/lineit/share?url=" + u},
		{Name: "Tumblr", URL: "https://www.tumblr.com/widgets/share/tool?canonicalUrl=" + u + "&title=" + t},
		{Name: "Viber", URL: "viber://forward?text=" + mailEscape(title+" "+pageURL)},
		{Name: "Email", URL: "mailto:?subject=" + mailEscape(title) + "&body=" + mailEscape(pageURL)},
	}
}

// mailEscape query-escapes s for a mailto link, where "+" is not read as a space.
func mailEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
