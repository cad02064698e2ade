package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
)

var commonFirstNames = []string{
	"Alex", "Bailey", "Cameron", "Dana", "Elliot", "Frankie", "Gabriel",
	"Harper", "Imani", "Jordan", "Kendall", "Logan", "Morgan", "Nico",
	"Oakley", "Parker", "Quinn", "Riley", "Sage", "Taylor",
}

var commonLastNames = []string{
	"Adams", "Brooks", "Carter", "Diaz", "Ellis", "Foster", "Griffin",
	"Hayes", "Iverson", "Jensen", "Keller", "Lopez", "Mercer", "Nguyen",
	"Ortega", "Patel", "Quigley", "Reyes", "Sutton", "Torres",
}

func GenerateRandomFullName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	last := commonLastNames[rand.Intn(len(commonLastNames))]
	return first + " " + last
}

// most of a shop roster is plain employees, with a few leads
var roles = []domain.Role{
	domain.RoleEmployee,
	domain.RoleEmployee,
	domain.RoleEmployee,
	domain.RoleShiftLead,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateEmailFromFullName(fullName string, emailDomainName string) string {
	local := strings.ToLower(strings.ReplaceAll(fullName, " ", "."))

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		local += string(digits[rand.Intn(len(digits))])
	}

	return local + "@" + emailDomainName
}

func GenerateRandomEmployee(password string, emailDomainName string) (*domain.Employee, error) {
	fullName := GenerateRandomFullName()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	employee := &domain.Employee{
		FullName:     fullName,
		Email:        GenerateEmailFromFullName(fullName, emailDomainName),
		PasswordHash: string(passwordHash),
		Role:         GenerateRandomRole(),
	}

	return employee, nil
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	randomPassword := make([]rune, length)
	for i := range randomPassword {
		randomPassword[i] = letters[rand.Intn(len(letters))]
	}
	return string(randomPassword)
}

// GenerateRandomAvailabilityWindows produces a plausible part-time
// submission: a handful of weekdays with one window each.
func GenerateRandomAvailabilityWindows() []domain.AvailabilityWindow {
	days := []int{0, 1, 2, 3, 4, 5, 6}
	for i := len(days) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		days[i], days[j] = days[j], days[i]
	}

	n := rand.Intn(4) + 3
	windows := make([]domain.AvailabilityWindow, 0, n)
	for _, day := range days[:n] {
		startHour := rand.Intn(8) + 6  // 06:00-13:00
		length := rand.Intn(5) + 4     // 4-8 hours
		windows = append(windows, domain.AvailabilityWindow{
			Day:         day,
			StartMinute: startHour * 60,
			EndMinute:   (startHour + length) * 60,
		})
	}

	return windows
}

// GenerateDemoCoverageWeek builds a typical coffee-shop week: a morning
// block, a midday overlap and an evening block every day, with a
// shift-lead requirement over opening.
func GenerateDemoCoverageWeek() []domain.CoverageRequirement {
	lead := domain.RoleShiftLead

	var requirements []domain.CoverageRequirement
	for day := 0; day < 7; day++ {
		weekend := day >= 5

		open := 7 * 60
		if weekend {
			open = 8 * 60
		}

		requirements = append(requirements,
			domain.CoverageRequirement{
				Day:         day,
				StartMinute: open,
				EndMinute:   12 * 60,
				Headcount:   2,
				Notes:       "morning rush",
			},
			domain.CoverageRequirement{
				Day:         day,
				StartMinute: open,
				EndMinute:   15 * 60,
				Headcount:   1,
				Role:        &lead,
				Notes:       "opening lead",
			},
			domain.CoverageRequirement{
				Day:         day,
				StartMinute: 12 * 60,
				EndMinute:   17 * 60,
				Headcount:   2,
			},
			domain.CoverageRequirement{
				Day:         day,
				StartMinute: 17 * 60,
				EndMinute:   21 * 60,
				Headcount:   1,
				Notes:       "closing",
			},
		)
	}

	return requirements
}

// FormatShiftLine renders one shift for notification emails.
func FormatShiftLine(day string, startMinute, endMinute int) string {
	return fmt.Sprintf("%s %02d:%02d - %02d:%02d", day, startMinute/60, startMinute%60, endMinute/60, endMinute%60)
}
