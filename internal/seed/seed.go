// Package seed populates a development database with a small marketplace:
// employers with open jobs and job seekers with applications against them.
package seed

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jobhub-dev/jobhub/backend/internal/domain"
	"github.com/jobhub-dev/jobhub/backend/internal/repository"
)

type employerSeed struct {
	user domain.User
	jobs []domain.Job
}

var employerSeeds = []employerSeed{
	{
		user: domain.User{
			Role: domain.RoleEmployer, Email: "employer1@example.com", Name: "John Smith",
			Company: "Tech Solutions Inc", Bio: "Looking for talented developers to join our team",
			Location: &domain.Location{City: "San Francisco", State: "CA", Country: "USA"},
		},
		jobs: []domain.Job{
			{
				Title:          "Senior Full-Stack Developer",
				Description:    "We're looking for an experienced full-stack developer to join our dynamic team. You'll work on cutting-edge web applications.",
				RequiredSkills: []string{"React", "Node.js", "TypeScript", "PostgreSQL"},
				Budget:         8000, RateType: domain.RateTypeFixed,
				Location: &domain.Location{City: "San Francisco", State: "CA", Country: "USA"},
			},
			{
				Title:          "Backend Developer",
				Description:    "Join our backend team to build robust APIs and scalable systems using modern technologies.",
				RequiredSkills: []string{"Go", "PostgreSQL", "Docker"},
				Budget:         7500, RateType: domain.RateTypeFixed,
				Location: &domain.Location{City: "San Francisco", State: "CA", Country: "USA"},
			},
			{
				Title:          "DevOps Engineer",
				Description:    "Help us maintain and scale our infrastructure. Experience with AWS, Docker, and CI/CD required.",
				RequiredSkills: []string{"AWS", "Docker", "CI/CD", "Linux"},
				Budget:         9000, RateType: domain.RateTypeHourly,
				Location: &domain.Location{City: "San Francisco", State: "CA", Country: "USA"},
			},
		},
	},
	{
		user: domain.User{
			Role: domain.RoleEmployer, Email: "employer2@example.com", Name: "Sarah Johnson",
			Company: "Creative Studios", Bio: "We hire creative minds",
			Location: &domain.Location{City: "New York", State: "NY", Country: "USA"},
		},
		jobs: []domain.Job{
			{
				Title:          "UI/UX Designer",
				Description:    "Join our creative team to design stunning user interfaces for web and mobile applications.",
				RequiredSkills: []string{"Figma", "Adobe XD", "Design Systems"},
				Budget:         6000, RateType: domain.RateTypeFixed,
				Location: &domain.Location{City: "New York", State: "NY", Country: "USA"},
			},
			{
				Title:          "Web Designer",
				Description:    "Create beautiful, responsive websites using modern design principles and web technologies.",
				RequiredSkills: []string{"HTML", "CSS", "JavaScript", "Responsive Design"},
				Budget:         4500, RateType: domain.RateTypeFixed,
				Location: &domain.Location{City: "New York", State: "NY", Country: "USA"},
			},
		},
	},
	{
		user: domain.User{
			Role: domain.RoleEmployer, Email: "employer3@example.com", Name: "Mike Davis",
			Company: "Digital Marketing Hub", Bio: "Leading digital marketing agency",
			Location: &domain.Location{City: "Los Angeles", State: "CA", Country: "USA"},
		},
		jobs: []domain.Job{
			{
				Title:          "Digital Marketing Specialist",
				Description:    "Looking for a marketing expert to help manage our digital campaigns, social media, and content strategy.",
				RequiredSkills: []string{"Google Analytics", "SEO", "Social Media"},
				Budget:         5000, RateType: domain.RateTypeFixed,
				Location: &domain.Location{City: "Los Angeles", State: "CA", Country: "USA"},
			},
			{
				Title:          "Content Writer",
				Description:    "We need a skilled content writer to create engaging blog posts, articles, and web content on various topics.",
				RequiredSkills: []string{"Content Writing", "SEO", "WordPress"},
				Budget:         2500, RateType: domain.RateTypeHourly,
				Location: &domain.Location{City: "Los Angeles", State: "CA", Country: "USA"},
			},
		},
	},
}

var jobSeekerSeeds = []domain.User{
	{
		Role: domain.RoleJobSeeker, Email: "seeker1@example.com", Name: "Alex Thompson",
		Bio:    "Full-stack developer passionate about building amazing web applications",
		Skills: []string{"React", "Node.js", "TypeScript", "PostgreSQL"}, PortfolioLink: "https://alexportfolio.com",
		Location: &domain.Location{City: "San Francisco", State: "CA", Country: "USA"},
	},
	{
		Role: domain.RoleJobSeeker, Email: "seeker2@example.com", Name: "Emma Wilson",
		Bio:    "UI/UX designer with 3 years of experience creating beautiful interfaces",
		Skills: []string{"Figma", "Adobe XD", "Sketch", "Illustrator"}, PortfolioLink: "https://emmadesigns.com",
		Location: &domain.Location{City: "New York", State: "NY", Country: "USA"},
	},
	{
		Role: domain.RoleJobSeeker, Email: "seeker3@example.com", Name: "Jordan Lee",
		Bio:    "Marketing specialist focused on digital campaigns and brand growth",
		Skills: []string{"Google Analytics", "SEO", "Content Writing", "Social Media"}, PortfolioLink: "https://jordanmarketing.com",
		Location: &domain.Location{City: "Los Angeles", State: "CA", Country: "USA"},
	},
	{
		Role: domain.RoleJobSeeker, Email: "seeker4@example.com", Name: "Taylor Chen",
		Bio:    "Backend developer specializing in scalable systems",
		Skills: []string{"Go", "PostgreSQL", "Docker", "AWS"}, PortfolioLink: "https://taylorchen.dev",
		Location: &domain.Location{City: "San Francisco", State: "CA", Country: "USA"},
	},
	{
		Role: domain.RoleJobSeeker, Email: "seeker5@example.com", Name: "Morgan Brown",
		Bio:    "Content writer and copy editor with expertise in tech and lifestyle niches",
		Skills: []string{"Content Writing", "Copy Editing", "SEO", "WordPress"}, PortfolioLink: "https://morganwrites.com",
		Location: &domain.Location{City: "Austin", State: "TX", Country: "USA"},
	},
}

var coverLetters = []string{
	"I'm excited about this opportunity and believe my experience is a great match.",
	"My background lines up well with what you're looking for. I'd love to talk.",
	"I've done similar work before and can start right away.",
}

// Run inserts the seed users, jobs, and applications. It is not idempotent;
// run it against an empty database.
func Run(repo *repository.Repository, password string) error {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	jobs := make([]*domain.Job, 0)
	for _, es := range employerSeeds {
		employer := es.user
		employer.PasswordHash = string(passwordHash)
		if err := repo.CreateUser(&employer); err != nil {
			return err
		}

		for _, j := range es.jobs {
			job := j
			job.EmployerID = employer.ID
			job.Deadline = time.Now().Add(30 * 24 * time.Hour)
			if err := repo.CreateJob(&job); err != nil {
				return err
			}
			jobs = append(jobs, &job)
		}
	}
	slog.Info("seeded employers and jobs", "employers", len(employerSeeds), "jobs", len(jobs))

	applications := 0
	for i, js := range jobSeekerSeeds {
		seeker := js
		seeker.PasswordHash = string(passwordHash)
		if err := repo.CreateUser(&seeker); err != nil {
			return err
		}

		// each seeker applies to a few jobs, staggered so the data set is not
		// uniform
		for j := i % 3; j < len(jobs); j += 3 {
			app := &domain.Application{
				JobID:       jobs[j].ID,
				JobSeekerID: seeker.ID,
				CoverLetter: coverLetters[(i+j)%len(coverLetters)],
			}
			if err := repo.CreateApplication(app); err != nil {
				return err
			}
			applications++
		}
	}
	slog.Info("seeded job seekers and applications", "jobSeekers", len(jobSeekerSeeds), "applications", applications)

	return nil
}
