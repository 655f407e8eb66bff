// Генерирует пару ECDSA ключей для подписи JWT админ-портала.
package main

import (
	"flag"

	"corpsite-back/pkg/jwt"
)

func main() {
	privatePath := flag.String("private", "ecdsa_private.pem", "путь до приватного ключа")
	publicPath := flag.String("public", "ecdsa_public.pem", "путь до публичного ключа")
	flag.Parse()

	jwt.MustECDSAGenerateKeys(*privatePath, *publicPath)
}
