package config

import (
	"fmt"
	"net"
	neturl "net/url"
	"strconv"
	"strings"
)

// DSNValue assembles the MySQL DSN, preferring an explicit dsn value.
func (c DatabaseConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}

	params := neturl.Values{}
	params.Set("charset", c.Charset)
	params.Set("parseTime", strconv.FormatBool(c.ParseTime))
	params.Set("loc", c.Loc)

	auth := c.User
	if c.Password != "" {
		auth += ":" + c.Password
	}

	return fmt.Sprintf("%s@tcp(%s)/%s?%s",
		auth,
		net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		c.Name,
		params.Encode(),
	)
}

// URLValue assembles the redis connection URL, preferring an explicit url value.
func (c RedisConfig) URLValue() string {
	if v := strings.TrimSpace(c.URL); v != "" {
		if strings.HasPrefix(v, "redis://") || strings.HasPrefix(v, "rediss://") {
			return v
		}
		return "redis://" + v
	}

	scheme := "redis"
	if c.TLS {
		scheme = "rediss"
	}
	u := &neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + strconv.Itoa(c.DB),
	}
	if c.Username != "" {
		if c.Password != "" {
			u.User = neturl.UserPassword(c.Username, c.Password)
		} else {
			u.User = neturl.User(c.Username)
		}
	} else if c.Password != "" {
		u.User = neturl.UserPassword("", c.Password)
	}
	return u.String()
}
