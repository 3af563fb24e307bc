package booking

import "context"

// Teacher is a bookable instructor.
type Teacher struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Instrument string `json:"instrument"`
	ImageURL   string `json:"imageUrl,omitempty"`
}

// TeacherProvider supplies the teachers offered by the booking flow.
type TeacherProvider interface {
	Teachers(ctx context.Context) ([]Teacher, error)
}

// MockDataService serves a fixed teacher list.
type MockDataService struct{}

var mockTeachers = []Teacher{
	{ID: "1", FirstName: "Anna", LastName: "Keller", Instrument: "Piano", ImageURL: "assets/teachers/anna.jpg"},
	{ID: "2", FirstName: "Marco", LastName: "Ruiz", Instrument: "Guitar", ImageURL: "assets/teachers/marco.jpg"},
	{ID: "3", FirstName: "Lena", LastName: "Okafor", Instrument: "Violin", ImageURL: "assets/teachers/lena.jpg"},
	{ID: "4", FirstName: "Tom", LastName: "Becker", Instrument: "Drums", ImageURL: "assets/teachers/tom.jpg"},
}

// Teachers returns a copy of the fixed list.
func (MockDataService) Teachers(ctx context.Context) ([]Teacher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Teacher, len(mockTeachers))
	copy(out, mockTeachers)
	return out, nil
}
