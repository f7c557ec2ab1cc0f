package providers

// ISecurityProvider defines hub API security provider.
type ISecurityProvider interface {
	IsEnabled() bool
	GetUser(headers map[string][]string) (string, error)
}

// SecUser has data describing single hub API user.
// Password must be a bcrypt hash.
type SecUser struct {
	Name     string `yaml:"name" validate:"required"`
	Password string `yaml:"password" validate:"required"`
}

// SecuritySettings has configured hub API users.
type SecuritySettings struct {
	Users []*SecUser `yaml:"users" validate:"dive"`
}
