package school

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shrimpsizemoose/schoolcli/internal/models"
	"github.com/shrimpsizemoose/schoolcli/internal/store"
)

type CourseService struct {
	courses  store.CourseRepository
	trainees *TraineeService
	newID    func() int
}

func NewCourseService(courses store.CourseRepository, trainees *TraineeService) *CourseService {
	return &CourseService{
		courses:  courses,
		trainees: trainees,
		newID:    randomID,
	}
}

func (s *CourseService) Add(ctx context.Context, name, startDate string) (string, error) {
	if err := requireField("Must provide course name and start date", name, startDate); err != nil {
		return "", err
	}
	if err := requireText(invalidCourseNameMsg, name); err != nil {
		return "", err
	}
	if err := requireCalendarDate(startDate); err != nil {
		return "", err
	}

	courses, err := s.courses.LoadCourses(ctx)
	if err != nil {
		return "", err
	}

	id, err := uniqueID(courses, s.newID)
	if err != nil {
		return "", err
	}

	course := models.Course{
		ID:           id,
		Name:         name,
		StartDate:    startDate,
		Participants: []int{},
	}
	if err := s.save(ctx, append(courses, course), course); err != nil {
		return "", err
	}
	return fmt.Sprintf("CREATED: %d %s %s", course.ID, course.Name, course.StartDate), nil
}

// Update overwrites name and start date; the roster is left alone.
func (s *CourseService) Update(ctx context.Context, ref Ref, name, startDate string) (string, error) {
	if err := requireField("Must provide ID, name and start date.", string(ref), name, startDate); err != nil {
		return "", err
	}
	if err := requireText(invalidCourseNameMsg, name); err != nil {
		return "", err
	}
	if err := requireCalendarDate(startDate); err != nil {
		return "", err
	}

	courses, err := s.courses.LoadCourses(ctx)
	if err != nil {
		return "", err
	}

	idx, err := requireExisting(courses, ref, "Course", doesNotExistPhrase)
	if err != nil {
		return "", err
	}

	course := &courses[idx]
	course.Name = name
	course.StartDate = startDate
	if err := s.save(ctx, courses, *course); err != nil {
		return "", err
	}
	return fmt.Sprintf("UPDATED: %d %s %s", course.ID, course.Name, course.StartDate), nil
}

// Delete removes the course only; trainee records are untouched.
func (s *CourseService) Delete(ctx context.Context, ref Ref) (string, error) {
	if err := requireField("Must provide course ID", string(ref)); err != nil {
		return "", err
	}

	courses, err := s.courses.LoadCourses(ctx)
	if err != nil {
		return "", err
	}

	idx, err := requireExisting(courses, ref, "Course", doesNotExistPhrase)
	if err != nil {
		return "", err
	}

	deleted := courses[idx]
	courses = slices.Delete(courses, idx, idx+1)
	if err := s.courses.SaveCourses(ctx, courses); err != nil {
		return "", err
	}
	return fmt.Sprintf("DELETED: %d %s", deleted.ID, deleted.Name), nil
}

// Join appends the trainee to the end of the roster. The course is resolved
// before the trainee, so a command naming neither reports the course.
func (s *CourseService) Join(ctx context.Context, courseRef, traineeRef Ref) (string, error) {
	if err := requireField("Must provide course ID and trainee ID", string(courseRef), string(traineeRef)); err != nil {
		return "", err
	}

	courses, err := s.courses.LoadCourses(ctx)
	if err != nil {
		return "", err
	}

	idx, err := requireExisting(courses, courseRef, "Course", doesNotExistPhrase)
	if err != nil {
		return "", err
	}

	trainee, err := s.trainees.Find(ctx, traineeRef)
	if err != nil {
		return "", err
	}

	course := &courses[idx]
	if course.HasParticipant(trainee.ID) {
		return "", newError(KindConflict, "The Trainee has already joined this course")
	}
	if course.IsFull() {
		return "", newError(KindCapacityExceeded, "The course is full.")
	}
	if models.EnrolmentCount(courses, trainee.ID) >= models.MaxEnrolments {
		return "", newError(KindCapacityExceeded, "A trainee is not allowed to join more than %d courses.", models.MaxEnrolments)
	}

	course.Participants = append(course.Participants, trainee.ID)
	if err := s.save(ctx, courses, *course); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s Joined %s", trainee.FullName(), course.Name), nil
}

func (s *CourseService) Leave(ctx context.Context, courseRef, traineeRef Ref) (string, error) {
	if err := requireField("Must provide course ID and trainee ID", string(courseRef), string(traineeRef)); err != nil {
		return "", err
	}

	courses, err := s.courses.LoadCourses(ctx)
	if err != nil {
		return "", err
	}

	idx, err := requireExisting(courses, courseRef, "Course", doesNotExistPhrase)
	if err != nil {
		return "", err
	}

	trainee, err := s.trainees.Find(ctx, traineeRef)
	if err != nil {
		return "", err
	}

	course := &courses[idx]
	pos := slices.Index(course.Participants, trainee.ID)
	if pos == -1 {
		return "", newError(KindAlreadyAbsent, "The Trainee did not join the course")
	}

	course.Participants = slices.Delete(course.Participants, pos, pos+1)
	if err := s.courses.SaveCourses(ctx, courses); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s Left %s", trainee.FullName(), course.Name), nil
}

// Get renders the course and its roster. Participants whose trainee record is
// gone are skipped and not counted.
func (s *CourseService) Get(ctx context.Context, ref Ref) (string, error) {
	if err := requireField("Must provide course ID", string(ref)); err != nil {
		return "", err
	}

	courses, err := s.courses.LoadCourses(ctx)
	if err != nil {
		return "", err
	}

	idx, err := requireExisting(courses, ref, "Course", doesNotExistPhrase)
	if err != nil {
		return "", err
	}
	course := courses[idx]

	trainees, err := s.trainees.ByID(ctx)
	if err != nil {
		return "", err
	}

	var lines []string
	for _, id := range course.Participants {
		t, ok := trainees[id]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %d %s %s", t.ID, t.FirstName, t.LastName))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d %s %s\nParticipants (%d):", course.ID, course.Name, course.StartDate, len(lines))
	for _, line := range lines {
		b.WriteString("\n" + line)
	}
	return b.String(), nil
}

// GetAll lists courses by start date. Dates are zero-padded, so string order
// is chronological; courses starting the same day keep their stored order.
func (s *CourseService) GetAll(ctx context.Context) (string, error) {
	courses, err := s.courses.LoadCourses(ctx)
	if err != nil {
		return "", err
	}

	slices.SortStableFunc(courses, func(a, b models.Course) int {
		return strings.Compare(a.StartDate, b.StartDate)
	})

	var b strings.Builder
	b.WriteString("Courses:\n")
	for _, c := range courses {
		fmt.Fprintf(&b, "%d %s %s %d", c.ID, c.Name, c.StartDate, len(c.Participants))
		if c.IsFull() {
			b.WriteString(" FULL")
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nTotal: %d", len(courses))
	return b.String(), nil
}

// save checks the changed course against the model rules before writing the
// collection back.
func (s *CourseService) save(ctx context.Context, courses []models.Course, changed models.Course) error {
	if err := changed.Validate(); err != nil {
		return fmt.Errorf("invalid course %d: %w", changed.ID, err)
	}
	return s.courses.SaveCourses(ctx, courses)
}
