package scoring

// DefaultSafelist lists well-known domains that are never scored.
// Matching is on label boundaries, so "google.com" covers
// "maps.google.com" but not "evilgoogle.com".
var DefaultSafelist = []string{
	// Search engines
	"google.com", "bing.com", "yahoo.com", "duckduckgo.com", "baidu.com",
	// Social and messaging
	"facebook.com", "twitter.com", "x.com", "instagram.com", "whatsapp.com",
	"reddit.com", "discord.com", "telegram.org", "linkedin.com",
	// Knowledge
	"wikipedia.org", "archive.org", "arxiv.org", "medium.com",
	// Developer
	"github.com", "gitlab.com", "bitbucket.org", "stackoverflow.com",
	"npmjs.com", "python.org", "go.dev", "golang.org", "docker.com",
	// Large vendors
	"microsoft.com", "apple.com", "amazon.com", "adobe.com", "ibm.com",
	// Productivity
	"slack.com", "zoom.us", "dropbox.com", "notion.so", "figma.com",
	// Shopping
	"ebay.com", "etsy.com", "shopify.com", "walmart.com",
	// Finance
	"paypal.com", "stripe.com", "wise.com", "chase.com", "bankofamerica.com",
	// Mail
	"gmail.com", "outlook.com", "proton.me", "icloud.com", "live.com",
	// Media
	"youtube.com", "netflix.com", "spotify.com", "twitch.tv", "bbc.com",
	"nytimes.com", "reuters.com",
}
