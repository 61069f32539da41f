package aihandler

const (
	questionsSysPromt = "You are an experienced technical interviewer. You prepare interview questions for HR screening and always answer with strictly formatted JSON."

	// шаблон запроса генерации пар вопрос/ответ по данным вакансии
	questionsPromtTemplate = `Generate a JSON array containing %d technical interview questions along with detailed answers based on the following job information. Each object in the array must have the fields "question" and "answer", formatted as follows:

[
  { "question": "<Question text>", "answer": "<Answer text>" }
]

Job Information:
- Job Position: %s
- Job Description: %s
- Years of Experience Required: %s
- Tech Stacks/Skills: %s
- Requirements: %s

The questions should assess:
1. Technical skills relevant to the position
2. Problem-solving abilities
3. Best practices in the field
4. Practical experience with the mentioned technologies

Please format the output strictly as an array of JSON objects without any additional labels, code blocks, or explanations. Return only the JSON array with questions and answers.`

	scoreSysPromt = "You are an experienced technical interviewer. You compare candidate answers against reference answers and always respond with strictly formatted JSON."

	// шаблон запроса оценки ответа кандидата
	scorePromtTemplate = `Question: "%s"
User Answer: "%s"
Correct Answer: "%s"

Please compare the user's answer to the correct answer, and provide a rating (from 1 to 10) based on answer quality, and offer feedback for improvement.

IMPORTANT: The rating must be precise with two decimal places (e.g., 7.42, 8.95, etc.), not just whole numbers or .5 increments.

Format your feedback with the following requirements:
1. Use clear subheadings (like "Content", "Completeness", etc.)
2. Under each subheading, use short bullet points
3. Address the person directly using "your" instead of "the user"
4. Keep each bullet point concise and actionable

Return the result in JSON format with the fields "ratings" (number with two decimal places) and "feedback" (string).`

	summarySysPromt = "You are an experienced technical interviewer writing a final candidate evaluation."

	// шаблон запроса итогового отзыва по всем ответам интервью
	summaryPromtTemplate = `Based on the following interview responses, provide a comprehensive overall feedback for the candidate:

%s

Overall Rating: %.1f/10

Please provide constructive feedback highlighting strengths and areas for improvement.`
)
