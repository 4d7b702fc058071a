package validation

// DenylistVersion identifies the revision of the constant tables below.
// Bump it whenever a table changes so downstream consumers can detect that
// re-extraction may yield different results.
const DenylistVersion = "2026-07"

// companyNameDenylist rejects navigation, UI and legal-boilerplate phrases
// that regularly land in company-name candidate positions.  Matched
// case-insensitively against the whole candidate.
var companyNameDenylist = []string{
	"impressum",
	"imprint",
	"legal notice",
	"mentions légales",
	"mentions legales",
	"datenschutz",
	"datenschutzerklärung",
	"privacy policy",
	"cookie policy",
	"cookie settings",
	"terms and conditions",
	"terms of service",
	"allgemeine geschäftsbedingungen",
	"kontakt",
	"contact us",
	"contact",
	"about us",
	"über uns",
	"home",
	"startseite",
	"menu",
	"navigation",
	"search",
	"suche",
	"newsletter",
	"login",
	"anmelden",
	"warenkorb",
	"shopping cart",
	"all rights reserved",
	"alle rechte vorbehalten",
	"tous droits réservés",
	"copyright",
	"sitemap",
	"haftungsausschluss",
	"disclaimer",
	"angaben gemäß § 5 tmg",
	"angaben gemäß § 5 ddg",
	"verantwortlich für den inhalt",
}

// providerNameDenylist rejects well-known registrars, hosters and payment
// processors whose names appear in imprints, footers and embedded metadata
// but never identify the operating company.  Matched as a case-insensitive
// substring of the candidate.
var providerNameDenylist = []string{
	"paypal",
	"stripe",
	"klarna",
	"mollie",
	"adyen",
	"godaddy",
	"ionos",
	"1&1",
	"strato",
	"hetzner",
	"ovh",
	"wix.com",
	"squarespace",
	"shopify",
	"jimdo",
	"wordpress",
	"woocommerce",
	"cloudflare",
	"united internet",
	"host europe",
	"domainfactory",
	"namecheap",
	"google analytics",
	"google ireland",
	"facebook ireland",
	"meta platforms",
	"trusted shops",
	"usercentrics",
	"cookiebot",
}

// sentenceMarkers are lowercase whole words whose presence marks a candidate
// as running prose rather than a company name.
var sentenceMarkers = []string{
	"wir", "sie", "unsere", "unser", "bitte", "hier",
	"please", "welcome", "click", "here", "our", "your",
	"nous", "vous", "notre", "votre", "bienvenue",
}

// personRoleDenylist rejects captured labels masquerading as person names:
// any token of the candidate matching one of these words disqualifies it.
var personRoleDenylist = []string{
	"geschäftsführer", "geschäftsführerin", "geschäftsführung",
	"vorstand", "vorstandsvorsitzender", "inhaber", "inhaberin",
	"vertreten", "vertretungsberechtigt", "durch",
	"director", "directors", "managing", "manager", "management",
	"ceo", "cfo", "cto", "coo", "chairman", "president", "präsident",
	"gérant", "gérante", "directeur", "directrice",
	"herr", "frau", "monsieur", "madame",
	"gmbh", "ag", "kg", "ug", "ltd", "limited", "sarl", "sas",
	"company", "firma", "société",
	"kontakt", "contact", "impressum", "telefon", "phone", "email",
	"registergericht", "handelsregister",
}

// personTitlePrefixes are honorifics stripped from the front of a person
// name before validation.
var personTitlePrefixes = []string{
	"dr.", "dr", "prof.", "prof", "dipl.-ing.", "dipl.-kfm.", "mag.", "ing.",
}

// streetNoiseTokens disqualify a street candidate: their presence means the
// line is contact or company boilerplate, not an address line.
var streetNoiseTokens = []string{
	"tel", "telefon", "telephone", "phone", "fax", "telefax",
	"email", "e-mail", "mail:", "@", "www.", "http",
	"gmbh", "ltd", "limited", "s.a.r.l", "sarl",
	"ust-id", "vat", "hrb", "hra",
}

// placeholderEmailDomains rejects addresses on throwaway or template
// domains that template authors leave behind.
var placeholderEmailDomains = []string{
	"example.com", "example.org", "example.net",
	"test.com", "test.de", "email.com", "domain.com",
	"yourdomain.com", "yourcompany.com", "mustermann.de",
	"firma.de", "meinefirma.de", "sample.com",
}
