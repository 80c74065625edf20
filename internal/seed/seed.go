// Package seed is the starting content of a fresh store.
// Every call returns new values, so callers may mutate them freely.
package seed

import (
	"time"

	"github.com/batch26/keepsake/internal/model"
)

// epoch anchors seed timestamps. Lists are newest first, so each entry is
// stamped a minute before the one above it.
var epoch = time.Date(2022, time.September, 1, 9, 0, 0, 0, time.UTC)

func stamp(i int) time.Time {
	return epoch.Add(-time.Duration(i) * time.Minute)
}

func Students() []*model.Student {
	students := []*model.Student{
		{
			ID:      "1",
			Name:    "Elena Rodriguez",
			Major:   "Psychology",
			Quote:   "The one who always had extra pens and snacks.",
			Image:   "https://picsum.photos/seed/elena/400/500",
			Tags:    model.StringList{"Science"},
			Socials: model.Socials{LinkedIn: "#", Instagram: "#"},
		},
		{
			ID:      "2",
			Name:    "Marcus Chen",
			Major:   "Architecture",
			Quote:   "Design is never done, only due.",
			Image:   "https://picsum.photos/seed/marcus/400/600",
			Tags:    model.StringList{"Arts", "Engineering"},
			Socials: model.Socials{LinkedIn: "#", Twitter: "#"},
		},
		{
			ID:      "3",
			Name:    "Sarah Johnson",
			Major:   "Biology",
			Quote:   "Actually read the syllabus.",
			Image:   "https://picsum.photos/seed/sarah/500/500",
			Tags:    model.StringList{"Science"},
			Socials: model.Socials{Instagram: "#"},
		},
		{
			ID:      "4",
			Name:    "David Kim",
			Major:   "Computer Sci",
			Quote:   "Anyone seen my charger?",
			Image:   "https://picsum.photos/seed/david/500/400",
			Tags:    model.StringList{"Engineering"},
			Socials: model.Socials{LinkedIn: "#", Twitter: "#", Instagram: "#"},
		},
		{
			ID:      "5",
			Name:    "Maya Brooks",
			Major:   "Fine Arts",
			Quote:   "Coffee first, questions later.",
			Image:   "https://picsum.photos/seed/maya/400/500",
			Tags:    model.StringList{"Arts"},
			Socials: model.Socials{Instagram: "#"},
		},
		{
			ID:      "6",
			Name:    "James Wilson",
			Major:   "Business",
			Quote:   "Fake it till you make it.",
			Image:   "https://picsum.photos/seed/james/400/400",
			Tags:    model.StringList{"Business"},
			Socials: model.Socials{LinkedIn: "#"},
		},
		{
			ID:      "7",
			Name:    "Aisha Patel",
			Major:   "English Lit",
			Quote:   "Just five more minutes.",
			Image:   "https://picsum.photos/seed/aisha/400/600",
			Tags:    model.StringList{"Arts"},
			Socials: model.Socials{Twitter: "#", Instagram: "#"},
		},
		{
			ID:      "8",
			Name:    "Tom Baker",
			Major:   "Engineering",
			Quote:   "It works on my machine.",
			Image:   "https://picsum.photos/seed/tom/400/500",
			Tags:    model.StringList{"Engineering"},
			Socials: model.Socials{LinkedIn: "#"},
		},
	}
	// Students list oldest first, the order they joined the yearbook.
	for i, s := range students {
		s.CreatedAt = stamp(len(students) - i)
		s.UpdatedAt = s.CreatedAt
	}
	return students
}

func Messages() []*model.WallMessage {
	return []*model.WallMessage{
		{
			ID:           "1",
			Text:         "I'll never forget the late nights at the library... or mostly the coffee runs. We survived mechanics 101 solely on caffeine and hope!",
			Author:       "Sarah J.",
			Major:        "Computer Science",
			Date:         "Oct 12",
			Style:        model.Paper1,
			Rotation:     "-2deg",
			TapeRotation: "1deg",
			CreatedAt:    stamp(0),
		},
		{
			ID:           "2",
			Text:         "To the best four years of our lives. We made it! Can't believe it's actually over.",
			Author:       "Mike T.",
			Major:        "Economics",
			Date:         "Oct 15",
			Style:        model.Paper2,
			Rotation:     "1deg",
			TapeRotation: "-2deg",
			Image:        "https://picsum.photos/seed/wall2/300/200",
			CreatedAt:    stamp(1),
		},
		{
			ID:           "3",
			Text:         "Remember the fresher's party? Feels like yesterday. Wishing everyone the best.",
			Author:       "Ananya",
			Date:         "2h ago",
			Style:        model.Paper3,
			Rotation:     "-1deg",
			TapeRotation: "3deg",
			CreatedAt:    stamp(2),
		},
		{
			ID:           "4",
			Text:         "Going to miss the chaotic group study sessions where we mostly just ate pizza. 🍕",
			Author:       "Leo D.",
			Date:         "Oct 18",
			Style:        model.Paper4,
			Rotation:     "2deg",
			TapeRotation: "-1deg",
			Tags:         model.StringList{"#Memories", "#PizzaLords"},
			CreatedAt:    stamp(3),
		},
	}
}

func Media() []*model.VaultItem {
	items := []*model.VaultItem{
		{ID: "1", Type: model.MediaTypeImage, Src: "https://picsum.photos/seed/vault1/400/500", Alt: "Library laughing", Date: "Sept 2022", Caption: "Candid laughter in the library", Tags: model.StringList{"Freshman"}, Aspect: model.AspectPortrait},
		{ID: "2", Type: model.MediaTypeImage, Src: "https://picsum.photos/seed/vault2/600/400", Alt: "Graduation hug", Date: "May 2026", Caption: "Group hug after finals", Tags: model.StringList{"Convocation", "Grad Trip"}, Aspect: model.AspectLandscape},
		{ID: "3", Type: model.MediaTypeImage, Src: "https://picsum.photos/seed/vault3/500/500", Alt: "Pizza run", Date: "Oct 2023", Caption: "Late night pizza run", Tags: model.StringList{"Sophomore"}, Aspect: model.AspectSquare},
		{ID: "4", Type: model.MediaTypeImage, Src: "https://picsum.photos/seed/vault4/400/600", Alt: "Campus sunset", Date: "June 2025", Caption: "Campus at sunset", Tags: model.StringList{"Junior", "Grad Trip"}, Aspect: model.AspectTall},
		{ID: "5", Type: model.MediaTypeVideo, Src: "https://picsum.photos/seed/vault5/600/450", Alt: "Last lecture", Date: "April 2026", Caption: "The Last Lecture", Tags: model.StringList{"Convocation", "Videos"}, Aspect: model.AspectLandscape},
		{ID: "6", Type: model.MediaTypeImage, Src: "https://picsum.photos/seed/vault6/600/400", Alt: "Abstract architecture", Date: "March 2024", Caption: "Abstract forms", Tags: model.StringList{"Sophomore", "Arts"}, Aspect: model.AspectLandscape},
		{ID: "7", Type: model.MediaTypeImage, Src: "https://picsum.photos/seed/vault7/400/550", Alt: "Confetti", Date: "May 2026", Caption: "We made it", Tags: model.StringList{"Convocation"}, Aspect: model.AspectPortrait},
	}
	for i, item := range items {
		item.CreatedAt = stamp(i)
	}
	return items
}
