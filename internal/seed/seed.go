// Package seed holds the fixed data every new store starts from.
//
// Each function builds its values from scratch, so callers may mutate what they
// get back without affecting any other store.
package seed

import "github.com/sakif/internhub/internal/model"

// Dataset is the full set of initial collections.
type Dataset struct {
	Internships   []model.Internship
	Logbook       []model.LogbookEntry
	Notifications []model.Notification
	Students      []model.Student
}

// Default returns a fresh copy of the standard seed collections.
func Default() Dataset {
	return Dataset{
		Internships:   Internships(),
		Logbook:       Logbook(),
		Notifications: Notifications(),
		Students:      Students(),
	}
}

// TemplateUser is the identity login starts from before the role and name are
// overridden.
func TemplateUser() model.User {
	return model.User{
		ID:         "u1",
		Name:       "Aditi Sharma",
		Role:       model.RoleStudent,
		Email:      "aditi.s@college.edu",
		Avatar:     "https://ui-avatars.com/api/?name=Aditi+Sharma&background=0D8ABC&color=fff",
		Phone:      "+91 98765 43210",
		Department: "Computer Science",
		Bio:        "Final year CS student passionate about Frontend Development and AI.",
	}
}

func Internships() []model.Internship {
	return []model.Internship{
		{
			ID:          "1",
			Title:       "Frontend Developer Intern",
			Company:     "TechFlow Solutions",
			Logo:        "https://ui-avatars.com/api/?name=TF&background=1976D2&color=fff",
			Location:    "Bangalore (Hybrid)",
			Type:        model.TypeHybrid,
			Stipend:     "₹15,000/mo",
			Status:      model.InternshipOpen,
			Applicants:  45,
			PostedDate:  "2 days ago",
			Duration:    "6 Months",
			Description: "We are looking for a passionate Frontend Developer Intern to join our team. You will be working with React, TypeScript, and Tailwind CSS to build modern web applications.",
			Skills:      []string{"React", "TypeScript", "Tailwind", "Git"},
		},
		{
			ID:          "2",
			Title:       "Data Science Intern",
			Company:     "DataMinds Analytics",
			Logo:        "https://ui-avatars.com/api/?name=DM&background=48C78E&color=fff",
			Location:    "Remote",
			Type:        model.TypeRemote,
			Stipend:     "₹20,000/mo",
			Status:      model.InternshipOpen,
			Applicants:  120,
			PostedDate:  "1 week ago",
			Duration:    "3 Months",
			Description: "Join our data team to analyze large datasets and build predictive models. Proficiency in Python and SQL is required.",
			Skills:      []string{"Python", "SQL", "Pandas", "Machine Learning"},
		},
		{
			ID:          "3",
			Title:       "UX/UI Design Intern",
			Company:     "Creative Studios",
			Logo:        "https://ui-avatars.com/api/?name=CS&background=9C27B0&color=fff",
			Location:    "Mumbai",
			Type:        model.TypeOnSite,
			Stipend:     "₹12,000/mo",
			Status:      model.InternshipClosed,
			Applicants:  30,
			PostedDate:  "3 weeks ago",
			Duration:    "6 Months",
			Description: "Work closely with our product team to design beautiful and intuitive user interfaces. Experience with Figma is a must.",
			Skills:      []string{"Figma", "Prototyping", "User Research"},
		},
		{
			ID:          "4",
			Title:       "Backend Engineer Intern",
			Company:     "ServerLess Inc.",
			Logo:        "https://ui-avatars.com/api/?name=SL&background=FF5722&color=fff",
			Location:    "Gurgaon",
			Type:        model.TypeOnSite,
			Stipend:     "₹25,000/mo",
			Status:      model.InternshipOpen,
			Applicants:  89,
			PostedDate:  "Just now",
			Duration:    "6 Months",
			Description: "Help us scale our backend infrastructure. You will work with Node.js, Express, and MongoDB.",
			Skills:      []string{"Node.js", "MongoDB", "AWS", "API Design"},
		},
		{
			ID:          "5",
			Title:       "Mobile App Developer",
			Company:     "AppWorks",
			Logo:        "https://ui-avatars.com/api/?name=AW&background=E91E63&color=fff",
			Location:    "Remote",
			Type:        model.TypeRemote,
			Stipend:     "₹18,000/mo",
			Status:      model.InternshipOpen,
			Applicants:  56,
			PostedDate:  "4 days ago",
			Duration:    "4 Months",
			Description: "Develop cross-platform mobile applications using Flutter.",
			Skills:      []string{"Flutter", "Dart", "Firebase"},
		},
	}
}

func Logbook() []model.LogbookEntry {
	return []model.LogbookEntry{
		{
			ID:            "l1",
			Date:          "2023-10-24",
			Activity:      "Implemented login authentication using JWT tokens.",
			SkillsLearned: []string{"React", "JWT", "Security"},
			Hours:         6,
			Status:        model.LogbookApproved,
			Feedback:      "Great progress on security practices. Make sure to handle token expiration gracefully.",
			MediaURL:      "https://picsum.photos/400/200?random=1",
		},
		{
			ID:            "l2",
			Date:          "2023-10-25",
			Activity:      "Designed the dashboard layout using Tailwind CSS.",
			SkillsLearned: []string{"CSS", "Responsive Design", "Tailwind"},
			Hours:         5,
			Status:        model.LogbookPending,
		},
		{
			ID:            "l3",
			Date:          "2023-10-26",
			Activity:      "Fixed bugs in the user profile update API.",
			SkillsLearned: []string{"Debugging", "API", "Backend"},
			Hours:         4,
			Status:        model.LogbookApproved,
			Feedback:      "Good attention to detail.",
		},
		{
			ID:            "l4",
			Date:          "2023-10-27",
			Activity:      "Attended team sprint planning meeting and assigned tasks.",
			SkillsLearned: []string{"Agile", "Scrum", "Communication"},
			Hours:         2,
			Status:        model.LogbookApproved,
			Feedback:      "Participation in meetings is key to team success.",
		},
	}
}

func Notifications() []model.Notification {
	return []model.Notification{
		{
			ID:      "n1",
			Title:   "Logbook Approved",
			Message: "Your logbook entry for Oct 26 has been approved by Prof. Mehta.",
			Date:    "2 hours ago",
			Type:    model.NotificationSuccess,
		},
		{
			ID:      "n2",
			Title:   "New Internship Alert",
			Message: "TechFlow Solutions posted a new role: Backend Engineer Intern.",
			Date:    "5 hours ago",
			Type:    model.NotificationInfo,
		},
		{
			ID:      "n3",
			Title:   "Application Shortlisted",
			Message: "Congratulations! You have been shortlisted for the Data Science Intern role.",
			Date:    "1 day ago",
			Read:    true,
			Type:    model.NotificationSuccess,
		},
		{
			ID:      "n4",
			Title:   "Missing Logbook Entry",
			Message: "You missed submitting your daily log for Oct 23. Please submit it immediately.",
			Date:    "2 days ago",
			Read:    true,
			Type:    model.NotificationWarning,
		},
	}
}

func Students() []model.Student {
	return []model.Student{
		{ID: "s1", Name: "Aditi Sharma", Email: "aditi.s@college.edu", Department: "CS", Year: "4th", GPA: 9.2, Status: model.StudentInterning, Skills: []string{"React", "Node"}, Company: "TechFlow", Avatar: "https://ui-avatars.com/api/?name=Aditi+Sharma"},
		{ID: "s2", Name: "Rahul Verma", Email: "rahul.v@college.edu", Department: "CS", Year: "4th", GPA: 8.5, Status: model.StudentSeeking, Skills: []string{"Python", "ML"}, Avatar: "https://ui-avatars.com/api/?name=Rahul+Verma"},
		{ID: "s3", Name: "Priya Singh", Email: "priya.s@college.edu", Department: "IT", Year: "3rd", GPA: 8.8, Status: model.StudentPlaced, Skills: []string{"Java", "Spring"}, Company: "Infosys", Avatar: "https://ui-avatars.com/api/?name=Priya+Singh"},
		{ID: "s4", Name: "Amit Patel", Email: "amit.p@college.edu", Department: "ECE", Year: "4th", GPA: 7.9, Status: model.StudentSeeking, Skills: []string{"Embedded", "C++"}, Avatar: "https://ui-avatars.com/api/?name=Amit+Patel"},
		{ID: "s5", Name: "Sneha Gupta", Email: "sneha.g@college.edu", Department: "CS", Year: "3rd", GPA: 9.5, Status: model.StudentInterning, Skills: []string{"Figma", "UI/UX"}, Company: "Creative Studios", Avatar: "https://ui-avatars.com/api/?name=Sneha+Gupta"},
		{ID: "s6", Name: "Vikram Malhotra", Email: "vikram.m@college.edu", Department: "Mech", Year: "4th", GPA: 8.2, Status: model.StudentPlaced, Skills: []string{"AutoCAD", "SolidWorks"}, Company: "Tata Motors", Avatar: "https://ui-avatars.com/api/?name=Vikram+Malhotra"},
		{ID: "s7", Name: "Rohan Das", Email: "rohan.d@college.edu", Department: "IT", Year: "4th", GPA: 7.5, Status: model.StudentSeeking, Skills: []string{"PHP", "Laravel"}, Avatar: "https://ui-avatars.com/api/?name=Rohan+Das"},
	}
}
