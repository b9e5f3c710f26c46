package handlers

import (
	"errors"
	"net"
	"net/url"
	"strconv"
	"strings"
)

const maxPort = 65535

var ErrMissingURL = errors.New("url query parameter must be provided exactly once")
var ErrInvalidURL = errors.New("url is not an absolute URL")
var ErrUnsupportedScheme = errors.New("url scheme is not supported")

// ParseTargetURL разбирает строку в абсолютный URL апстрима.
// Адрес обязан содержать схему http(s) и хост, относительные ссылки не принимаются
func ParseTargetURL(raw string) (*url.URL, error) {
	target, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}
	if !target.IsAbs() || target.Host == "" {
		return nil, ErrInvalidURL
	}
	switch strings.ToLower(target.Scheme) {
	case "http", "https":
	default:
		return nil, ErrUnsupportedScheme
	}
	if !validPort(target.Port()) || !validHost(target.Hostname()) {
		return nil, ErrInvalidURL
	}
	return target, nil
}

// validPort проверяет диапазон порта; url.Parse проверяет только то, что порт состоит из цифр
func validPort(port string) bool {
	if port == "" {
		return true
	}
	n, err := strconv.Atoi(port)
	return err == nil && n >= 0 && n <= maxPort
}

// validHost отклоняет хосты, которые выглядят как IPv4-адрес, но им не являются (256.256.256.256).
// Хост, последняя метка которого состоит только из цифр, считается IP-адресом
func validHost(host string) bool {
	if host == "" {
		return false
	}
	if strings.Contains(host, ":") {
		// IPv6-литерал
		return net.ParseIP(host) != nil
	}
	labels := strings.Split(strings.TrimSuffix(host, "."), ".")
	last := labels[len(labels)-1]
	if last == "" || strings.Trim(last, "0123456789") != "" {
		return true
	}
	return net.ParseIP(strings.TrimSuffix(host, ".")).To4() != nil
}

// targetParam достает единственное значение параметра url из сырой строки запроса.
// url.ParseQuery молча отбрасывает пары с некорректным экранированием, поэтому разбираем строку сами:
// такое значение сохраняется как есть и затем не проходит проверку адреса
func targetParam(rawQuery string) (string, error) {
	var values []string
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if unescaped, err := url.QueryUnescape(key); err == nil {
			key = unescaped
		}
		if key != URLQueryParam {
			continue
		}
		if unescaped, err := url.QueryUnescape(value); err == nil {
			value = unescaped
		}
		values = append(values, value)
	}
	if len(values) != 1 {
		return "", ErrMissingURL
	}
	return values[0], nil
}
