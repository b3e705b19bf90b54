package oauth

import (
	"Pinwall/internal/api/config"
	"Pinwall/internal/api/dto"
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleUserInfoURL OpenID userinfo 端点
const GoogleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// Provider 外部身份提供方
type Provider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*dto.Identity, error)
}

type GoogleProvider struct {
	conf        *oauth2.Config
	httpClient  *resty.Client
	userInfoURL string
}

func NewGoogleProvider(cfg config.OAuthConfig) *GoogleProvider {
	return NewProvider(&oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       cfg.Scopes,
		Endpoint:     google.Endpoint,
	}, GoogleUserInfoURL)
}

// NewProvider 自定义端点, 测试中指向本地服务
func NewProvider(conf *oauth2.Config, userInfoURL string) *GoogleProvider {
	return &GoogleProvider{
		conf:        conf,
		httpClient:  resty.New().SetTimeout(10 * time.Second),
		userInfoURL: userInfoURL,
	}
}

func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.conf.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange 用授权码换取令牌并读取用户资料
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*dto.Identity, error) {
	token, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "exchange authorization code")
	}

	var identity dto.Identity
	resp, err := p.httpClient.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetResult(&identity).
		Get(p.userInfoURL)
	if err != nil {
		return nil, errors.Wrap(err, "fetch userinfo")
	}
	if resp.IsError() {
		return nil, errors.Errorf("fetch userinfo: status %d", resp.StatusCode())
	}
	if identity.Subject == "" {
		return nil, errors.New("userinfo without subject")
	}
	return &identity, nil
}
