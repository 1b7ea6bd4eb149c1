package school

import (
	"context"
	"fmt"
	"strings"

	"github.com/shrimpsizemoose/schoolcli/internal/models"
	"github.com/shrimpsizemoose/schoolcli/internal/store"
)

type TraineeService struct {
	trainees store.TraineeRepository
	courses  store.CourseRepository
	newID    func() int
}

func NewTraineeService(trainees store.TraineeRepository, courses store.CourseRepository) *TraineeService {
	return &TraineeService{
		trainees: trainees,
		courses:  courses,
		newID:    randomID,
	}
}

func (s *TraineeService) Add(ctx context.Context, firstName, lastName string) (string, error) {
	if err := requireField("Must provide first and last name", firstName, lastName); err != nil {
		return "", err
	}
	if err := requireText(invalidTraineeNameMsg, firstName, lastName); err != nil {
		return "", err
	}

	trainees, err := s.trainees.LoadTrainees(ctx)
	if err != nil {
		return "", err
	}

	id, err := uniqueID(trainees, s.newID)
	if err != nil {
		return "", err
	}

	trainee := models.Trainee{
		ID:        id,
		FirstName: NormalizeName(firstName),
		LastName:  NormalizeName(lastName),
	}
	if err := trainee.Validate(); err != nil {
		return "", fmt.Errorf("invalid trainee %d: %w", id, err)
	}

	trainees = append(trainees, trainee)
	if err := s.trainees.SaveTrainees(ctx, trainees); err != nil {
		return "", err
	}
	return fmt.Sprintf("CREATED: %d %s %s", trainee.ID, trainee.FirstName, trainee.LastName), nil
}

// Update changes only the names that are given; an empty name keeps the
// stored one.
func (s *TraineeService) Update(ctx context.Context, ref Ref, firstName, lastName string) (string, error) {
	if ref == "" || (firstName == "" && lastName == "") {
		return "", newError(KindMissingField, "UPDATE requires traineeID and at least firstName or lastName")
	}
	if err := requireText(invalidTraineeNameMsg, firstName, lastName); err != nil {
		return "", err
	}

	trainees, err := s.trainees.LoadTrainees(ctx)
	if err != nil {
		return "", err
	}

	idx, err := requireExisting(trainees, ref, "Trainee", notFoundPhrase)
	if err != nil {
		return "", err
	}

	trainee := &trainees[idx]
	if firstName != "" {
		trainee.FirstName = NormalizeName(firstName)
	}
	if lastName != "" {
		trainee.LastName = NormalizeName(lastName)
	}

	if err := s.trainees.SaveTrainees(ctx, trainees); err != nil {
		return "", err
	}
	return fmt.Sprintf("UPDATED: %d %s %s", trainee.ID, trainee.FirstName, trainee.LastName), nil
}

// Delete removes the trainee only. Course rosters keep the ID.
func (s *TraineeService) Delete(ctx context.Context, ref Ref) (string, error) {
	if err := requireField("DELETE requires traineeID", string(ref)); err != nil {
		return "", err
	}

	trainees, err := s.trainees.LoadTrainees(ctx)
	if err != nil {
		return "", err
	}

	idx, err := requireExisting(trainees, ref, "Trainee", notFoundPhrase)
	if err != nil {
		return "", err
	}

	deleted := trainees[idx]
	trainees = append(trainees[:idx], trainees[idx+1:]...)
	if err := s.trainees.SaveTrainees(ctx, trainees); err != nil {
		return "", err
	}
	return fmt.Sprintf("DELETED: %d %s %s", deleted.ID, deleted.FirstName, deleted.LastName), nil
}

func (s *TraineeService) Get(ctx context.Context, ref Ref) (string, error) {
	if err := requireField("GET requires traineeID", string(ref)); err != nil {
		return "", err
	}

	trainees, err := s.trainees.LoadTrainees(ctx)
	if err != nil {
		return "", err
	}

	idx, err := requireExisting(trainees, ref, "Trainee", notFoundPhrase)
	if err != nil {
		return "", err
	}
	trainee := trainees[idx]

	courses, err := s.courses.LoadCourses(ctx)
	if err != nil {
		return "", err
	}

	var names []string
	for _, c := range courses {
		if c.HasParticipant(trainee.ID) {
			names = append(names, c.Name)
		}
	}
	joined := "None"
	if len(names) > 0 {
		joined = strings.Join(names, ", ")
	}

	return fmt.Sprintf("%d %s %s\nCourses: %s", trainee.ID, trainee.FirstName, trainee.LastName, joined), nil
}

func (s *TraineeService) GetAll(ctx context.Context) (string, error) {
	trainees, err := s.trainees.LoadTrainees(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Trainees:\n")
	for _, t := range trainees {
		fmt.Fprintf(&b, "%d %s %s\n", t.ID, t.FirstName, t.LastName)
	}
	fmt.Fprintf(&b, "\nTotal: %d", len(trainees))
	return b.String(), nil
}

// Find resolves ref for the course operations, which word a missing trainee
// differently from the trainee commands.
func (s *TraineeService) Find(ctx context.Context, ref Ref) (models.Trainee, error) {
	trainees, err := s.trainees.LoadTrainees(ctx)
	if err != nil {
		return models.Trainee{}, err
	}
	idx, err := requireExisting(trainees, ref, "Trainee", doesNotExistPhrase)
	if err != nil {
		return models.Trainee{}, err
	}
	return trainees[idx], nil
}

// ByID indexes every stored trainee by ID.
func (s *TraineeService) ByID(ctx context.Context) (map[int]models.Trainee, error) {
	trainees, err := s.trainees.LoadTrainees(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[int]models.Trainee, len(trainees))
	for _, t := range trainees {
		index[t.ID] = t
	}
	return index, nil
}
