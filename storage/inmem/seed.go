package inmem

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/Mukesh1q2/LIMS-sub001/core"
	"github.com/Mukesh1q2/LIMS-sub001/core/attendance"
	"github.com/Mukesh1q2/LIMS-sub001/core/fee"
	"github.com/Mukesh1q2/LIMS-sub001/core/library"
	"github.com/Mukesh1q2/LIMS-sub001/core/seat"
	"github.com/Mukesh1q2/LIMS-sub001/core/student"
	"github.com/Mukesh1q2/LIMS-sub001/core/user"
)

// SeedPassword is the password every seeded user account starts with.
// Seeding is meant for local development only.
const SeedPassword = "Instadesk123"

// Seed loads a small demo data set through the repositories so that ID
// counters advance exactly as they would for API-created records.
func (db *DB) Seed() error {
	now := core.NowFunc().UTC()
	today := now.Format(core.DateFormat)
	month := now.Format(core.MonthFormat)

	studentRepo := NewStudentRepository(db)
	attendanceRepo := NewAttendanceRepository(db)
	feeRepo := NewFeeRepository(db)
	libraryRepo := NewLibraryRepository(db)
	seatRepo := NewSeatRepository(db)
	userRepo := NewUserRepository(db)

	students := []student.Student{
		{
			Name:             "Rahul Sharma",
			EnrollmentNumber: "ENR-2024-001",
			Class:            "Class 12",
			Batch:            "2024",
			Shift:            student.ShiftMorning,
			Phone:            "9876543210",
			GuardianPhone:    "9876543211",
			Email:            "rahul.sharma@example.com",
			Status:           student.StatusActive,
			DateOfJoining:    now.AddDate(0, -8, 0).Format(core.DateFormat),
		},
		{
			Name:             "Priya Patel",
			EnrollmentNumber: "ENR-2024-002",
			Class:            "Class 11",
			Batch:            "2024",
			Shift:            student.ShiftMorning,
			Phone:            "9876543220",
			GuardianPhone:    "9876543221",
			Email:            "priya.patel@example.com",
			Status:           student.StatusActive,
			DateOfJoining:    now.AddDate(0, -6, 0).Format(core.DateFormat),
		},
		{
			Name:             "Amit Verma",
			EnrollmentNumber: "ENR-2024-003",
			Class:            "Class 12",
			Batch:            "2024",
			Shift:            student.ShiftEvening,
			Phone:            "9876543230",
			GuardianPhone:    "9876543231",
			Status:           student.StatusActive,
			DateOfJoining:    now.AddDate(0, -5, 0).Format(core.DateFormat),
		},
		{
			Name:             "Sneha Gupta",
			EnrollmentNumber: "ENR-2023-017",
			Class:            "Class 12",
			Batch:            "2023",
			Shift:            student.ShiftEvening,
			Phone:            "9876543240",
			GuardianPhone:    "9876543241",
			Email:            "sneha.gupta@example.com",
			Status:           student.StatusActive,
			DateOfJoining:    now.AddDate(-1, -2, 0).Format(core.DateFormat),
		},
		{
			Name:             "Vikram Singh",
			EnrollmentNumber: "ENR-2023-004",
			Class:            "Class 11",
			Batch:            "2023",
			Shift:            student.ShiftMorning,
			Phone:            "9876543250",
			GuardianPhone:    "9876543251",
			Status:           student.StatusInactive,
			DateOfJoining:    now.AddDate(-1, -6, 0).Format(core.DateFormat),
			DateOfExit:       now.AddDate(0, -1, 0).Format(core.DateFormat),
		},
	}
	studentIDs := make([]string, 0, len(students))
	for _, stu := range students {
		stu.CreatedAt, stu.UpdatedAt = now, now
		created, err := studentRepo.CreateStudent(stu)
		if err != nil {
			return err
		}
		studentIDs = append(studentIDs, created.ID)
	}

	entries := []attendance.Attendance{
		{StudentID: studentIDs[0], Date: today, MorningPresent: true, EveningPresent: false},
		{StudentID: studentIDs[1], Date: today, MorningPresent: true, EveningPresent: true},
		{StudentID: studentIDs[2], Date: today, MorningPresent: false, EveningPresent: true},
		{StudentID: studentIDs[0], Date: now.AddDate(0, 0, -1).Format(core.DateFormat), MorningPresent: true, EveningPresent: true},
		{StudentID: studentIDs[3], Date: now.AddDate(0, 0, -1).Format(core.DateFormat), MorningPresent: false, EveningPresent: true},
	}
	for _, att := range entries {
		if _, err := attendanceRepo.CreateAttendance(att); err != nil {
			return err
		}
	}

	payments := []fee.Payment{
		{StudentID: studentIDs[0], Month: month, Amount: 1500, Mode: fee.ModeUPI, Status: fee.StatusPaid, PaidOn: today},
		{StudentID: studentIDs[1], Month: month, Amount: 1500, Mode: fee.ModeCash, Status: fee.StatusPaid, PaidOn: today},
		{StudentID: studentIDs[2], Month: month, Amount: 1200, Status: fee.StatusPending},
		{StudentID: studentIDs[3], Month: now.AddDate(0, -1, 0).Format(core.MonthFormat), Amount: 1200, Mode: fee.ModeCard, Status: fee.StatusPaid, PaidOn: now.AddDate(0, -1, 0).Format(core.DateFormat)},
	}
	for _, p := range payments {
		if _, err := feeRepo.CreatePayment(p); err != nil {
			return err
		}
	}

	books := []library.Book{
		{Title: "Concepts of Physics Vol 1", Author: "H. C. Verma", ISBN: "978-8177091878", Publisher: "Bharati Bhawan", Category: "Physics", TotalCopies: 5, AvailableCopies: 5},
		{Title: "Mathematics for Class 12", Author: "R. D. Sharma", ISBN: "978-9383182336", Publisher: "Dhanpat Rai", Category: "Mathematics", TotalCopies: 4, AvailableCopies: 4},
		{Title: "Modern ABC of Chemistry", Author: "S. P. Jauhar", ISBN: "978-9380644944", Publisher: "Modern Publishers", Category: "Chemistry", TotalCopies: 3, AvailableCopies: 3},
		{Title: "Wren & Martin English Grammar", Author: "P. C. Wren", ISBN: "978-8121900096", Publisher: "S. Chand", Category: "English", TotalCopies: 2, AvailableCopies: 2},
	}
	bookIDs := make([]string, 0, len(books))
	for _, b := range books {
		created, err := libraryRepo.CreateBook(b)
		if err != nil {
			return err
		}
		bookIDs = append(bookIDs, created.ID)
	}

	issues := []library.Issue{
		{
			BookID:    bookIDs[0],
			StudentID: studentIDs[0],
			IssueDate: now.AddDate(0, 0, -3).Format(core.DateFormat),
			DueDate:   now.AddDate(0, 0, 11).Format(core.DateFormat),
		},
		{
			// past due date, shows up as overdue
			BookID:    bookIDs[1],
			StudentID: studentIDs[3],
			IssueDate: now.AddDate(0, 0, -20).Format(core.DateFormat),
			DueDate:   now.AddDate(0, 0, -6).Format(core.DateFormat),
		},
	}
	for _, i := range issues {
		if _, err := libraryRepo.CreateIssue(i); err != nil {
			return err
		}
	}

	seatIDs := make([]string, 0, 8)
	for _, room := range []string{"R1", "R2"} {
		for n, seatNumber := range []string{"1", "2", "3", "4"} {
			s := seat.Seat{
				Room:       room,
				Section:    "A",
				SeatNumber: seatNumber,
				Status:     seat.StatusAvailable,
				HasLocker:  n < 2,
			}
			created, err := seatRepo.CreateSeat(s)
			if err != nil {
				return err
			}
			seatIDs = append(seatIDs, created.ID)
		}
	}
	// seat a couple of students and mirror the label on their record
	for _, pair := range []struct{ seatID, studentID string }{
		{seatIDs[0], studentIDs[0]},
		{seatIDs[4], studentIDs[3]},
	} {
		assigned, err := seatRepo.AssignSeat(pair.seatID, pair.studentID)
		if err != nil {
			return err
		}
		if _, err = studentRepo.SetStudentSeat(pair.studentID, assigned.Label()); err != nil {
			return err
		}
	}

	// hash once, all demo accounts share SeedPassword
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	users := []user.User{
		{Email: "superadmin@instadesk.test", Name: "Super Admin", Role: user.RoleSuperAdmin},
		{Email: "admin@instadesk.test", Name: "Anita Desai", Role: user.RoleAdmin},
		{Email: "accounts@instadesk.test", Name: "Mohan Iyer", Role: user.RoleAccountant},
		{Email: "library@instadesk.test", Name: "Kavita Rao", Role: user.RoleLibrarian},
		{Email: "teacher@instadesk.test", Name: "Suresh Nair", Role: user.RoleTeacher},
	}
	for _, usr := range users {
		usr.PasswordHash = hash
		usr.SetActive(true)
		usr.CreatedAt, usr.UpdatedAt = now, now
		if _, err := userRepo.CreateUser(usr); err != nil {
			return err
		}
	}
	return nil
}
