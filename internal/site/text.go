package site

type project struct {
	Name    string
	URL     string
	Stack   string
	Summary string
}

type contactLink struct {
	Label string
	Text  string
	Href  string
}

type contactInfo struct {
	Intro string
	Links []contactLink
}

var (
	contact = contactInfo{
		Intro: "Feel free to reach out to me via email or connect with me on GitHub or LinkedIn.",
		Links: []contactLink{
			{Label: "Email", Text: "amit.amit.rahman@gmail.com", Href: "mailto:amit.amit.rahman@gmail.com"},
			{Label: "GitHub", Text: "github.com/amitrahman1026", Href: "https://www.github.com/amitrahman1026"},
			{Label: "LinkedIn", Text: "linkedin.com/in/amitrahman1026", Href: "https://www.linkedin.com/in/amitrahman1026"},
		},
	}

	projects = []project{
		{
			Name:  "Screen Time Limit Android App",
			URL:   "https://github.com/JothamWong/Procastinot",
			Stack: "Kotlin | Jetpack Compose",
			Summary: `An Android application that helps users manage their screen time, built with Kotlin and
	Jetpack Compose. Also ships an OS-agnostic CLI university timetable and academic planner with persistent local storage.`,
		},
		{
			Name:  "6502 Microprocessor Emulator C++ Library",
			URL:   "https://github.com/amitrahman1026/my6502",
			Stack: "C/C++ | ASM | CMake | Boost",
			Summary: `A C++ library emulating the 6502 microprocessor for accurate simulation. CMake drives the
	build and Boost the unit tests that keep the emulator correct.`,
		},
		{
			Name:  "Morse Code Flashcard on FPGA Board",
			URL:   "https://github.com/amitrahman1026/EE2026-Final-Project",
			Stack: "FPGA | Verilog HDL | Digital Logic",
			Summary: `A Morse code flashcard game on an FPGA board that teaches through spaced repetition, with a
	GUI, audio spectrogram visualisation and an LFSR for pseudo-randomisation.`,
		},
		{
			Name:  "Search and Rescue Robot Vehicle",
			URL:   "https://github.com/amitrahman1026/search-rescue-bot",
			Stack: "C/C++ | ROS | Linux | Arduino | UART | TLS",
			Summary: `A tele-operated search and rescue robot with terrain mapping and collision avoidance. LIDAR
	and ultrasonic sensors feed ROS, and commands travel over UART secured by TLS.`,
		},
	}
)
