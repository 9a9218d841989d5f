package dto

// SocialAccount cuenta conectada en una plataforma (WhatsApp Business, Instagram, Facebook).
type SocialAccount struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Category    string `json:"category,omitempty"`
	AccessToken string `json:"-"`
	FanCount    int64  `json:"fan_count,omitempty"`
	// InstagramID cuenta de Instagram Business vinculada a la página, si existe.
	InstagramID string `json:"instagram_business_account,omitempty"`
}

// GatewayAck confirmación devuelta por la Graph API (ID del objeto creado y cuerpo crudo).
type GatewayAck struct {
	ID  string         `json:"id,omitempty"`
	Raw map[string]any `json:"raw,omitempty"`
}

// InboundMessage mensaje recibido leído desde la Graph API.
type InboundMessage struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp"`
}

// CreatePostRequest entrada para publicar en una red social.
type CreatePostRequest struct {
	Platform string `json:"platform" validate:"required,oneof=instagram facebook"`
	Account  string `json:"account" validate:"required"`
	Message  string `json:"message" validate:"required"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
	Link     string `json:"link" validate:"omitempty,url"`
}

// PageInsights métricas de una página de Facebook.
type PageInsights struct {
	PageID   string         `json:"page_id"`
	PageName string         `json:"page_name"`
	Insights map[string]any `json:"insights"`
}

// SocialInsightsDTO métricas unificadas. Un nil indica que la plataforma falló o no está conectada.
type SocialInsightsDTO struct {
	Instagram map[string]any `json:"instagram"`
	Facebook  []PageInsights `json:"facebook"`
}

// SocialAccountsDTO cuentas por plataforma. Un nil indica fallo de la llamada.
type SocialAccountsDTO struct {
	WhatsApp  []SocialAccount `json:"whatsapp"`
	Instagram []SocialAccount `json:"instagram"`
	Facebook  []SocialAccount `json:"facebook"`
}
