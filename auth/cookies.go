package auth

import "net/http"

// RefreshCookieName is the cookie carrying the refresh token. The token
// never appears in a response body.
const RefreshCookieName = "refreshToken"

// RefreshCookie builds the descriptor for delivering a refresh token. Pure
// function of the token and the service's production flag; the HTTP layer
// applies it to the response.
func (s *Service) RefreshCookie(refreshToken string) *http.Cookie {
	return &http.Cookie{
		Name:     RefreshCookieName,
		Value:    refreshToken,
		HttpOnly: true,
		Secure:   s.production,
		Path:     "/",
		MaxAge:   int(s.refreshTTL.Seconds()),
		SameSite: http.SameSiteNoneMode,
	}
}

// ClearRefreshCookie builds the descriptor that removes the refresh cookie
// (empty value, Max-Age=0).
func (s *Service) ClearRefreshCookie() *http.Cookie {
	return &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   s.production,
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteNoneMode,
	}
}
