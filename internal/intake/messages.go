package intake

const (
	greeting  = "Hello! 👋 I'm TalentScout. I'll help with your initial screening. Let's start. What is your full name?"
	farewell  = "Thank you for your time! 🎉 Our team will review your profile and get back to you soon."
	restarted = "No problem, let's start over. What is your full name?"

	askEmail      = "Thanks! What's your email address?"
	askPhone      = "Great. Please share your phone number."
	askExperience = "How many years of experience do you have?"
	askPosition   = "Which position are you applying for?"
	askLocation   = "Where are you currently located?"
	askTechStack  = "Please list your tech stack (languages, frameworks, databases, tools)."

	retryName       = "I didn't catch that. Please tell me your full name."
	retryEmail      = "That doesn't look like a valid email address. Please enter it again (e.g. jane@example.com)."
	retryPhone      = "Please enter a valid phone number (7 to 20 characters: digits, spaces, +, -, parentheses)."
	retryExperience = "Please enter your years of experience as a number between 0 and 50 (e.g. 3 or 4.5)."
	retryPosition   = "Please tell me which position you are applying for."
	retryLocation   = "Please tell me where you are currently located."
	retryTechStack  = "Please list at least one technology you work with."

	questionsIntro   = "Thanks! Here are your technical questions:"
	questionsClosing = "Please answer them one by one. You may type 'exit' when you are done."
	acknowledged     = "Thank you! Your answer has been noted. Our team will reach out if there's a next step. 😊"
)
