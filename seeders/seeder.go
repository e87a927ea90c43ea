package seeders

import (
	"context"
	"fmt"
	"log"

	"hospital-meals/internal/services"
	"hospital-meals/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Каждый сидер срабатывает только на пустой таблице, повторный запуск ничего не меняет.

func isEmpty(ctx context.Context, db *pgxpool.Pool, table string) (bool, error) {
	var n int64
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return false, fmt.Errorf("не удалось посчитать строки %s: %w", table, err)
	}
	return n == 0, nil
}

func SeedUsers(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("▶️  Создание пользователей...")
	empty, err := isEmpty(ctx, db, "users")
	if err != nil {
		return err
	}
	if !empty {
		log.Println("    - Пользователи уже есть. Пропускаем.")
		return nil
	}

	for _, u := range demoUsers {
		hash, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		if _, err := db.Exec(ctx,
			"INSERT INTO users (username, password_hash, role, full_name) VALUES ($1, $2, $3, $4)",
			u.Username, hash, string(u.Role), u.FullName,
		); err != nil {
			return fmt.Errorf("пользователь %s: %w", u.Username, err)
		}
		log.Printf("    - %s (%s)", u.Username, u.Role)
	}
	return nil
}

func SeedPatients(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("▶️  Создание пациентов...")
	empty, err := isEmpty(ctx, db, "patients")
	if err != nil {
		return err
	}
	if !empty {
		log.Println("    - Пациенты уже есть. Пропускаем.")
		return nil
	}

	for _, p := range demoPatients {
		if _, err := db.Exec(ctx,
			`INSERT INTO patients (mrn, full_name, ward, bed, room_number, dietary_restrictions, allergies)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.MRN, p.FullName, p.Ward, p.Bed, p.RoomNumber, p.DietaryRestrictions, p.Allergies,
		); err != nil {
			return fmt.Errorf("пациент %s: %w", p.MRN, err)
		}
	}
	return nil
}

func SeedMenu(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("▶️  Создание меню...")
	empty, err := isEmpty(ctx, db, "menu_items")
	if err != nil {
		return err
	}
	if !empty {
		log.Println("    - Меню уже заполнено. Пропускаем.")
		return nil
	}

	for _, item := range services.DefaultMenu {
		if _, err := db.Exec(ctx,
			"INSERT INTO menu_items (name, category, dietary) VALUES ($1, $2, $3)",
			item.Name, item.Category, item.Dietary,
		); err != nil {
			return fmt.Errorf("блюдо %s: %w", item.Name, err)
		}
	}
	return nil
}

// SeedSampleOrders нужен после пользователей, пациентов и меню.
func SeedSampleOrders(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("▶️  Создание примеров заказов...")
	empty, err := isEmpty(ctx, db, "orders")
	if err != nil {
		return err
	}
	if !empty {
		log.Println("    - Заказы уже есть. Пропускаем.")
		return nil
	}

	var nurseID uint64
	if err := db.QueryRow(ctx, "SELECT id FROM users WHERE username = 'nurse1'").Scan(&nurseID); err != nil {
		log.Println("    - Нет пользователя nurse1, примеры заказов не созданы.")
		return nil
	}

	for _, o := range demoOrders {
		tag, err := db.Exec(ctx,
			`INSERT INTO orders (patient_id, item_id, special_instructions, status, created_by)
			 SELECT p.id, m.id, $3::text, $4::text, $5::bigint
			 FROM patients p, menu_items m
			 WHERE p.mrn = $1 AND m.name = $2
			 LIMIT 1`,
			o.MRN, o.Item, o.Instructions, string(o.Status), nurseID,
		)
		if err != nil {
			return fmt.Errorf("заказ %s/%s: %w", o.MRN, o.Item, err)
		}
		if tag.RowsAffected() == 0 {
			log.Printf("    - Пропущен заказ %s/%s: нет пациента или блюда", o.MRN, o.Item)
		}
	}
	return nil
}
