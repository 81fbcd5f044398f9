package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// API wraps the Duet server's HTTP surface for the CLI. The JWT obtained at
// login is held for the session and sent as a Bearer token.
type API struct {
	http  *resty.Client
	token string
}

type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Profile struct {
	ID             uint           `json:"id"`
	Username       string         `json:"username"`
	RelationshipID *uint          `json:"relationship_id"`
	InviteCode     *string        `json:"invite_code"`
	ThemeConfig    map[string]any `json:"theme_config"`
}

type Entry struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	RelationshipID uint      `json:"relationship_id"`
	Content        string    `json:"content"`
	IsPrivate      bool      `json:"is_private"`
	WordCount      int       `json:"word_count"`
	CharCount      int       `json:"char_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewAPI(baseURL string) *API {
	return &API{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10 * time.Second),
	}
}

func (a *API) LoggedIn() bool {
	return a.token != ""
}

// apiError extracts the server's {"error": "..."} payload.
func apiError(resp *resty.Response) error {
	var body struct {
		Error string `json:"error"`
	}

	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		return errors.New(body.Error)
	}

	return fmt.Errorf("server returned %s", resp.Status())
}

func (a *API) request() *resty.Request {
	req := a.http.R().SetHeader("Content-Type", "application/json")

	if a.token != "" {
		req.SetAuthToken(a.token)
	}

	return req
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (a *API) Register(username, email, password string) (User, error) {
	resp, err := a.request().
		SetBody(map[string]string{
			"username": username,
			"email":    email,
			"password": password,
		}).
		Post("/api/auth/register")

	if err != nil {
		return User{}, err
	}

	if resp.IsError() {
		return User{}, apiError(resp)
	}

	var body authResponse

	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return User{}, err
	}

	a.token = body.Token
	return body.User, nil
}

func (a *API) Login(email, password string) (User, error) {
	resp, err := a.request().
		SetBody(map[string]string{
			"email":    email,
			"password": password,
		}).
		Post("/api/auth/login")

	if err != nil {
		return User{}, err
	}

	if resp.IsError() {
		return User{}, apiError(resp)
	}

	var body authResponse

	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return User{}, err
	}

	a.token = body.Token
	return body.User, nil
}

func (a *API) Logout() {
	if a.token != "" {
		a.request().Post("/api/auth/logout")
	}

	a.token = ""
}

func (a *API) Me() (User, error) {
	resp, err := a.request().Get("/api/auth/me")

	if err != nil {
		return User{}, err
	}

	if resp.IsError() {
		return User{}, apiError(resp)
	}

	var body struct {
		User User `json:"user"`
	}

	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return User{}, err
	}

	return body.User, nil
}

func (a *API) Profile() (Profile, error) {
	resp, err := a.request().Get("/api/profile")

	if err != nil {
		return Profile{}, err
	}

	if resp.IsError() {
		return Profile{}, apiError(resp)
	}

	var profile Profile

	if err := json.Unmarshal(resp.Body(), &profile); err != nil {
		return Profile{}, err
	}

	return profile, nil
}

func (a *API) SaveTheme(theme map[string]any) error {
	resp, err := a.request().SetBody(theme).Put("/api/profile/theme")

	if err != nil {
		return err
	}

	if resp.IsError() {
		return apiError(resp)
	}

	return nil
}

func (a *API) GenerateInviteCode() (string, error) {
	resp, err := a.request().Post("/api/pairing/invite-code")

	if err != nil {
		return "", err
	}

	if resp.IsError() {
		return "", apiError(resp)
	}

	var body struct {
		InviteCode string `json:"invite_code"`
	}

	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", err
	}

	return body.InviteCode, nil
}

func (a *API) Join(code string) (uint, error) {
	resp, err := a.request().
		SetBody(map[string]string{"code": code}).
		Post("/api/pairing/join")

	if err != nil {
		return 0, err
	}

	if resp.IsError() {
		return 0, apiError(resp)
	}

	var body struct {
		RelationshipID uint `json:"relationship_id"`
	}

	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return 0, err
	}

	return body.RelationshipID, nil
}

func (a *API) CreateEntry(content string) (Entry, error) {
	resp, err := a.request().
		SetBody(map[string]string{"content": content}).
		Post("/api/entries")

	if err != nil {
		return Entry{}, err
	}

	if resp.IsError() {
		return Entry{}, apiError(resp)
	}

	var entry Entry

	if err := json.Unmarshal(resp.Body(), &entry); err != nil {
		return Entry{}, err
	}

	return entry, nil
}

func (a *API) ListEntries() ([]Entry, error) {
	resp, err := a.request().Get("/api/entries")

	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, apiError(resp)
	}

	var list []Entry

	if err := json.Unmarshal(resp.Body(), &list); err != nil {
		return nil, err
	}

	return list, nil
}

func (a *API) GetEntry(id uint) (Entry, error) {
	resp, err := a.request().Get(fmt.Sprintf("/api/entries/%d", id))

	if err != nil {
		return Entry{}, err
	}

	if resp.IsError() {
		return Entry{}, apiError(resp)
	}

	var entry Entry

	if err := json.Unmarshal(resp.Body(), &entry); err != nil {
		return Entry{}, err
	}

	return entry, nil
}

// UpdateEntry sends a partial update; nil fields are omitted.
func (a *API) UpdateEntry(id uint, content *string, isPrivate *bool) (Entry, error) {
	body := make(map[string]any)

	if content != nil {
		body["content"] = *content
	}

	if isPrivate != nil {
		body["is_private"] = *isPrivate
	}

	resp, err := a.request().
		SetBody(body).
		Patch(fmt.Sprintf("/api/entries/%d", id))

	if err != nil {
		return Entry{}, err
	}

	if resp.IsError() {
		return Entry{}, apiError(resp)
	}

	var entry Entry

	if err := json.Unmarshal(resp.Body(), &entry); err != nil {
		return Entry{}, err
	}

	return entry, nil
}

func (a *API) DeleteEntry(id uint) error {
	resp, err := a.request().Delete(fmt.Sprintf("/api/entries/%d", id))

	if err != nil {
		return err
	}

	if resp.IsError() {
		return apiError(resp)
	}

	return nil
}
