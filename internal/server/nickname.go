package server

import (
	"math/rand"
)

// Nickname word lists, boteco flavor.
var (
	adjectives = []string{
		"Valente", "Esperto", "Alegre", "Misterioso", "Ligeiro",
		"Teimoso", "Sagaz", "Manhoso", "Sereno", "Danado",
		"Matreiro", "Faceiro", "Tranquilo", "Bravo", "Caprichoso",
		"Brilhante", "Astuto", "Arretado", "Sortudo", "Malandro",
	}

	animals = []string{
		"Tatu", "Arara", "Jaguar", "Capivara", "Mico",
		"Tucano", "Raposa", "Boto", "Pinguim", "Quati",
		"Lobo", "Vira-lata", "Gato", "Preá", "Tamanduá",
		"Ouriço", "Serelepe", "Jacaré", "Lontra", "Carcará",
	}
)

// GenerateNickname builds a random player nickname.
func GenerateNickname() string {
	adj := adjectives[rand.Intn(len(adjectives))]
	animal := animals[rand.Intn(len(animals))]
	return animal + " " + adj
}
