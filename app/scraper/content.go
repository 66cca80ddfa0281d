package scraper

import (
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

var titleSelectors = []string{
	"h1.entry-title",
	"h1.post-title",
	"h1.title",
	".entry-header h1",
	".post-header h1",
	"title",
}

var postContentSelectors = []string{
	".blog-content",
	".col-md-6.col-sm-7",
	".entry-content",
	".post-content",
	".content",
	"article .content",
	".post-body",
	"main article",
	".post",
	"article",
	"#content",
	".single-post-content",
}

const clutterSelectors = "script, style, nav, header, footer, aside, " +
	".adthrive-ad, .ad, .advertisement, .ad-banner, .promo-box, " +
	".social-share, .share-buttons, .related-posts, .tags, .categories, .comments"

const minContentLength = 50

// ContentExtractor pulls readable text out of a post page.
type ContentExtractor struct{}

func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{}
}

// Run extracts the article text with readability. Used when no known content
// container holds enough text.
func (e *ContentExtractor) Run(data []byte, pageURL string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("HTML data is empty")
	}

	var parsedURL *url.URL
	if pageURL != "" {
		parsedURL, _ = url.Parse(pageURL)
	}

	article, err := readability.FromReader(strings.NewReader(string(data)), parsedURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	text := collapseSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("no content extracted from HTML data")
	}

	slog.Debug("Content extracted with readability",
		"title", article.Title,
		"content_length", len(text))

	return text, nil
}

// Text returns the post body text, trying known containers before readability.
func (e *ContentExtractor) Text(doc *goquery.Document, data []byte, pageURL string) string {
	for _, selector := range postContentSelectors {
		element := doc.Find(selector).First()
		if element.Length() == 0 {
			continue
		}

		clone := element.Clone()
		clone.Find(clutterSelectors).Remove()

		if text := collapseSpace(textOf(clone)); utf8.RuneCountInString(text) > minContentLength {
			return text
		}
	}

	if main := doc.Find("main, div#main").First(); main.Length() > 0 {
		if text := collapseSpace(textOf(main)); utf8.RuneCountInString(text) > minContentLength {
			return text
		}
	}

	text, err := e.Run(data, pageURL)
	if err != nil {
		slog.Debug("No content found", "url", pageURL, "error", err)
		return ""
	}
	return text
}

func (e *ContentExtractor) Title(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		if text := collapseSpace(textOf(doc.Find(selector).First())); text != "" {
			return text
		}
	}
	return ""
}

// Image returns the post's lead image, preferring social meta tags.
func (e *ContentExtractor) Image(doc *goquery.Document, pageURL string) string {
	candidates := []string{
		doc.Find(`meta[property="og:image"]`).AttrOr("content", ""),
		doc.Find(`meta[name="twitter:image"]`).AttrOr("content", ""),
		doc.Find(`meta[name="image"]`).AttrOr("content", ""),
		doc.Find(".entry-content img[src], .post-content img[src], .blog-content img[src]").AttrOr("src", ""),
		doc.Find("img[src]").AttrOr("src", ""),
	}

	base, _ := url.Parse(pageURL)
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if abs, ok := resolveRef(base, candidate); ok {
			return abs
		}
		return candidate
	}

	return ""
}

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	spaceRun      = regexp.MustCompile(`\s+`)
)

var summaryKeywords = []string{
	"deal", "discount", "sale", "offer", "promo", "coupon", "code", "save", "free", "off",
	"price", "cost", "buy", "get", "click", "link", "here", "view", "shop", "store",
	"amazon", "walmart", "bestbuy", "canadian tire", "epic games", "steam", "playstation",
	"xbox", "nintendo", "apple", "microsoft", "google", "samsung", "sony", "lg",
	"percent", "%", "$", "dollar", "cad", "usd", "shipping", "delivery", "order",
	"limited time", "expires", "until", "while supplies last", "today only",
}

var fillerWords = []string{
	"the", "and", "or", "but", "if", "then", "also", "very", "really", "quite", "just",
	"only", "even", "still", "now", "today", "here", "there", "this", "that", "these",
	"those", "some", "any", "all", "each", "every", "no", "not", "can", "could", "will",
	"would", "should", "may", "might", "must", "shall", "do", "does", "did", "have",
	"has", "had", "be", "is", "are", "was", "were", "been", "being", "get", "got",
	"getting", "make", "made", "making", "take", "took", "taking", "give", "gave",
	"giving", "go", "goes", "went", "going", "come", "came", "coming", "see", "saw",
	"seeing", "know", "knew", "known", "knowing", "think", "thought", "thinking", "say",
	"said", "saying", "tell", "told", "telling", "use", "used", "using", "find", "found",
	"finding", "work", "worked", "working", "call", "called", "calling", "try", "tried",
	"trying", "ask", "asked", "asking", "need", "needed", "needing", "want", "wanted",
	"wanting", "turn", "turned", "turning", "put", "putting", "seem", "seemed", "seeming",
	"look", "looked", "looking", "feel", "felt", "feeling", "leave", "left", "leaving",
	"move", "moved", "moving", "live", "lived", "living", "believe", "believed",
	"believing", "hold", "held", "holding", "bring", "brought", "bringing", "happen",
	"happened", "happening", "write", "wrote", "written", "writing", "provide",
	"provided", "providing", "sit", "sat", "sitting", "stand", "stood", "standing",
	"lose", "lost", "losing", "pay", "paid", "paying", "meet", "met", "meeting",
	"include", "included", "including", "continue", "continued", "continuing", "set",
	"setting", "learn", "learned", "learning", "change", "changed", "changing", "lead",
	"led", "leading", "understand", "understood", "understanding", "watch", "watched",
	"watching", "follow", "followed", "following", "stop", "stopped", "stopping",
	"create", "created", "creating", "speak", "spoke", "spoken", "speaking", "read",
	"reading", "allow", "allowed", "allowing", "add", "added", "adding", "spend", "spent",
	"spending", "grow", "grew", "grown", "growing", "open", "opened", "opening", "walk",
	"walked", "walking", "win", "won", "winning", "offer", "offered", "offering",
	"remember", "remembered", "remembering", "love", "loved", "loving", "consider",
	"considered", "considering", "appear", "appeared", "appearing", "buy", "bought",
	"buying", "wait", "waited", "waiting", "serve", "served", "serving", "die", "died",
	"dying", "send", "sent", "sending", "expect", "expected", "expecting", "build",
	"built", "building", "stay", "stayed", "staying", "fall", "fell", "fallen", "falling",
	"cut", "cutting", "reach", "reached", "reaching", "kill", "killed", "killing",
	"remain", "remained", "remaining", "suggest", "suggested", "suggesting", "raise",
	"raised", "raising", "pass", "passed", "passing", "sell", "sold", "selling",
	"require", "required", "requiring", "report", "reported", "reporting", "decide",
	"decided", "deciding", "pull", "pulled", "pulling",
}

var hedgeWords = []string{
	"um", "uh", "hmm", "well", "like", "you know", "i mean", "basically", "literally",
	"actually", "honestly", "obviously", "clearly", "definitely", "certainly", "probably",
	"maybe", "perhaps", "anyway", "however", "therefore", "furthermore", "moreover",
	"nevertheless", "meanwhile", "otherwise", "instead", "besides", "although", "though",
	"unless", "until", "while", "since", "because", "if", "when", "where", "what", "why",
	"how", "who", "which", "whom", "whose",
}

var hypeWords = []string{
	"amazing", "awesome", "incredible", "fantastic", "great", "good", "nice", "cool",
	"sweet", "wow", "omg", "lol", "haha", "yes", "no", "ok", "okay", "sure", "right",
	"exactly", "absolutely", "totally", "completely", "perfectly", "simply", "easily",
	"quickly", "slowly", "carefully", "gently", "softly", "loudly", "clearly",
	"obviously", "definitely", "certainly", "probably", "maybe", "perhaps", "possibly",
	"likely", "unlikely", "hopefully", "unfortunately", "luckily", "surprisingly",
	"interestingly", "importantly", "basically", "essentially", "generally",
	"specifically", "particularly", "especially", "mainly", "mostly", "usually",
	"normally", "typically", "often", "sometimes", "rarely", "never", "always", "already",
	"still", "yet", "again", "once", "twice", "three times", "first", "second", "third",
	"last", "next", "previous", "final", "initial", "original", "new", "old", "young",
	"small", "large", "big", "little", "long", "short", "high", "low", "fast", "slow",
	"hot", "cold", "warm", "cool", "wet", "dry", "clean", "dirty", "easy", "hard",
	"difficult", "simple", "complex", "light", "dark", "bright", "heavy", "empty", "full",
	"open", "closed", "free", "busy", "quiet", "loud", "safe", "dangerous", "happy",
	"sad", "angry", "excited", "tired", "hungry", "thirsty", "sick", "healthy", "rich",
	"poor", "strong", "weak", "smart", "stupid", "funny", "serious", "beautiful", "ugly",
	"interesting", "boring", "important", "useful", "useless", "necessary", "unnecessary",
	"possible", "impossible", "correct", "wrong", "true", "false", "real", "fake",
	"public", "private", "local", "global", "national", "international", "popular",
	"common", "rare", "special", "normal", "strange", "different", "same", "similar",
	"equal", "better", "worse", "best", "worst", "more", "less", "most", "least",
	"enough", "too much", "too little", "too many", "too few",
}

// fluffPatterns are applied in order; a word listed in several groups is simply
// removed by the first.
var fluffPatterns = []*regexp.Regexp{
	wordPattern(fillerWords),
	wordPattern(hedgeWords),
	wordPattern(hypeWords),
}

func wordPattern(words []string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(` + strings.Join(words, "|") + `)\b`)
}

const (
	maxSummarySentences = 5
	maxSummaryLength    = 500
)

// Summarize keeps the deal-bearing sentences of content with filler words removed.
func Summarize(content string) string {
	if content == "" {
		return ""
	}

	sentences := sentenceSplit.Split(content, -1)

	var important []string
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if utf8.RuneCountInString(sentence) < 10 {
			continue
		}
		if !containsAny(strings.ToLower(sentence), summaryKeywords) {
			continue
		}

		cleaned := sentence
		for _, pattern := range fluffPatterns {
			cleaned = pattern.ReplaceAllString(cleaned, "")
		}
		cleaned = collapseSpace(cleaned)
		if utf8.RuneCountInString(cleaned) > 20 {
			important = append(important, cleaned)
		}
	}

	if len(important) == 0 {
		for _, sentence := range sentences[:min(3, len(sentences))] {
			if s := strings.TrimSpace(sentence); utf8.RuneCountInString(s) > 20 {
				important = append(important, s)
			}
		}
	}

	summary := collapseSpace(strings.Join(important[:min(maxSummarySentences, len(important))], ". "))
	if runes := []rune(summary); len(runes) > maxSummaryLength {
		summary = string(runes[:maxSummaryLength]) + "..."
	}

	return summary
}

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}
