package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera ids curtos para linhas criadas pelo motor (razão de
// custos, quadro mensal). Mesmo alfabeto do script de carga.
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 12)
}

// MustGenerateID é a variante usada em laços de emissão de linhas, onde a
// única falha possível do gerador é de entropia do sistema.
func MustGenerateID() string {
	id, err := gonanoid.Generate(characters, 12)
	if err != nil {
		panic(err)
	}
	return id
}
