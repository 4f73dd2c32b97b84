package amazondomain

// GetItemsRequest é o corpo da operação GetItems da PA-API v5.
// A ordem dos campos é estável: a assinatura cobre o payload serializado byte a byte.
type GetItemsRequest struct {
	ItemIds     []string `json:"ItemIds"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Marketplace string   `json:"Marketplace"`
	Resources   []string `json:"Resources"`
}

// DefaultResources são os recursos solicitados por padrão para montar o feed
var DefaultResources = []string{
	"ItemInfo.Title",
	"Images.Primary.Medium",
	"Offers.Listings.Price",
	"Offers.Listings.SavingBasis",
	"Offers.Listings.Availability.Type",
}

type GetItemsResponse struct {
	ItemsResult *ItemsResult `json:"ItemsResult,omitempty"`
	Errors      []ItemError  `json:"Errors,omitempty"`
}

type ItemsResult struct {
	Items []Item `json:"Items"`
}

type Item struct {
	ASIN          string    `json:"ASIN"`
	DetailPageURL string    `json:"DetailPageURL,omitempty"`
	ItemInfo      *ItemInfo `json:"ItemInfo,omitempty"`
	Images        *Images   `json:"Images,omitempty"`
	Offers        *Offers   `json:"Offers,omitempty"`
}

type ItemInfo struct {
	Title *DisplayValue `json:"Title,omitempty"`
}

type DisplayValue struct {
	DisplayValue string `json:"DisplayValue,omitempty"`
	Label        string `json:"Label,omitempty"`
	Locale       string `json:"Locale,omitempty"`
}

type Images struct {
	Primary *ImageSet `json:"Primary,omitempty"`
}

type ImageSet struct {
	Small  *Image `json:"Small,omitempty"`
	Medium *Image `json:"Medium,omitempty"`
	Large  *Image `json:"Large,omitempty"`
}

type Image struct {
	URL    string `json:"URL,omitempty"`
	Height int    `json:"Height,omitempty"`
	Width  int    `json:"Width,omitempty"`
}

type Offers struct {
	Listings []Listing `json:"Listings,omitempty"`
}

type Listing struct {
	ID           string        `json:"Id,omitempty"`
	Price        *Price        `json:"Price,omitempty"`
	SavingBasis  *Price        `json:"SavingBasis,omitempty"`
	Availability *Availability `json:"Availability,omitempty"`
}

type Price struct {
	Amount        float64 `json:"Amount,omitempty"`
	Currency      string  `json:"Currency,omitempty"`
	DisplayAmount string  `json:"DisplayAmount,omitempty"`
}

type Availability struct {
	Type    string `json:"Type,omitempty"`
	Message string `json:"Message,omitempty"`
}

// ItemError é a rejeição item a item devolvida pela PA-API. O ASIN rejeitado
// vem embutido na mensagem (ex.: "The ItemId B0ABCDEF12 provided in the
// request is invalid."), não em um campo próprio.
type ItemError struct {
	Code    string `json:"Code"`
	Message string `json:"Message"`
}
