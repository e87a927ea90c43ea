package main

import (
	"flag"
	"fmt"
	"log"

	"hospital-meals/pkg/utils"
)

// Печатает bcrypt-хеш пароля для ручной вставки в users.password_hash.
func main() {
	password := flag.String("password", "", "пароль, который нужно захешировать")
	flag.Parse()

	if *password == "" {
		log.Fatal("укажите -password")
	}

	hashedPassword, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("Ошибка при генерации хеша: %v", err)
	}
	fmt.Println(hashedPassword)
}
