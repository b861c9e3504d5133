package questionbank

import "github.com/stemsi/lms-backend/internal/model"

func q(text, correct string, options ...string) model.Question {
	return model.Question{Text: text, Options: options, CorrectAnswer: correct}
}

func standardTopics() map[string]model.QuestionSet {
	math := model.QuestionSet{
		q("What is 15 + 27?", "42", "40", "42", "45", "50"),
		q("What is 8 × 7?", "56", "54", "56", "58", "60"),
		q("What is 100 ÷ 4?", "25", "20", "25", "30", "35"),
		q("What is the square root of 64?", "8", "6", "7", "8", "9"),
		q("What is 12²?", "144", "124", "134", "144", "154"),
		q("What is 45 - 18?", "27", "25", "27", "29", "31"),
		q("What is 9 × 9?", "81", "72", "81", "90", "99"),
		q("What is 144 ÷ 12?", "12", "10", "11", "12", "13"),
		q("What is 25% of 200?", "50", "25", "50", "75", "100"),
		q("What is the value of π (pi) approximately?", "3.14", "2.14", "3.14", "4.14", "5.14"),
		q("If x + 5 = 12, what is x?", "7", "5", "6", "7", "8"),
		q("What is 2³ (2 to the power of 3)?", "8", "6", "8", "9", "12"),
		q("What is the perimeter of a square with side 5cm?", "20cm", "15cm", "20cm", "25cm", "30cm"),
		q("What is 0.5 as a fraction?", "1/2", "1/2", "1/3", "1/4", "1/5"),
		q("What is the sum of angles in a triangle?", "180°", "90°", "180°", "270°", "360°"),
	}

	science := model.QuestionSet{
		q("What is the chemical symbol for water?", "H2O", "H2O", "O2", "CO2", "H2"),
		q("What planet is closest to the Sun?", "Mercury", "Venus", "Earth", "Mercury", "Mars"),
		q("What is the speed of light?", "300,000 km/s", "300,000 km/s", "150,000 km/s", "450,000 km/s", "600,000 km/s"),
		q("What gas do plants absorb from the atmosphere?", "Carbon Dioxide", "Oxygen", "Nitrogen", "Carbon Dioxide", "Hydrogen"),
		q("How many bones are in the adult human body?", "206", "196", "206", "216", "226"),
		q("What is the largest planet in our solar system?", "Jupiter", "Saturn", "Jupiter", "Neptune", "Uranus"),
		q("What is the powerhouse of the cell?", "Mitochondria", "Nucleus", "Ribosome", "Mitochondria", "Chloroplast"),
		q("What is the boiling point of water at sea level?", "100°C", "90°C", "100°C", "110°C", "120°C"),
		q("What force keeps us on the ground?", "Gravity", "Magnetism", "Friction", "Gravity", "Tension"),
		q("What is the chemical symbol for Gold?", "Au", "Go", "Gd", "Au", "Ag"),
		q("How many chromosomes do humans have?", "46", "23", "46", "48", "52"),
		q("What is the hardest natural substance?", "Diamond", "Gold", "Iron", "Diamond", "Platinum"),
		q("What type of blood cells fight infection?", "White blood cells", "Red blood cells", "White blood cells", "Platelets", "Plasma"),
		q("What is the center of an atom called?", "Nucleus", "Electron", "Proton", "Neutron", "Nucleus"),
		q("What gas do humans exhale?", "Carbon Dioxide", "Oxygen", "Nitrogen", "Carbon Dioxide", "Hydrogen"),
	}

	wordKinds := []string{"Action word", "Describing word", "Person/place/thing", "Connecting word"}
	english := model.QuestionSet{
		q("What is a noun?", "Person/place/thing", wordKinds...),
		q("What is the past tense of 'run'?", "Ran", "Runned", "Ran", "Running", "Runs"),
		q("What is a synonym for 'happy'?", "Joyful", "Sad", "Joyful", "Angry", "Tired"),
		q("What is an adjective?", "Describing word", wordKinds...),
		q("What is the plural of 'child'?", "Children", "Childs", "Children", "Childes", "Childrens"),
		q("What is an antonym of 'hot'?", "Cold", "Warm", "Cold", "Cool", "Freezing"),
		q("What is a verb?", "Action word", wordKinds...),
		q("Which is correct?", "He doesn't like it", "He don't like it", "He doesn't like it", "He not like it", "He no like it"),
		q("What is the past tense of 'go'?", "Went", "Goed", "Gone", "Went", "Going"),
		q("What is a pronoun?", "I, you, he, she", "I, you, he, she", "Run, jump, play", "Big, small, red", "And, but, or"),
		q("What is the plural of 'mouse'?", "Mice", "Mouses", "Mice", "Meese", "Mices"),
		q("Which word is a preposition?", "Under", "Run", "Happy", "Under", "Quickly"),
		q("What is the superlative form of 'good'?", "Best", "Gooder", "Goodest", "Better", "Best"),
		q("What punctuation ends a question?", "Question mark (?)", "Period (.)", "Comma (,)", "Question mark (?)", "Exclamation (!)"),
		q("What is a compound word?", "Sunshine", "Sunshine", "Beautiful", "Running", "Quickly"),
	}

	history := model.QuestionSet{
		q("Who was the first President of India?", "Dr. Rajendra Prasad", "Jawaharlal Nehru", "Dr. Rajendra Prasad", "Mahatma Gandhi", "Sardar Patel"),
		q("In which year did India gain independence?", "1947", "1945", "1947", "1950", "1952"),
		q("Who is known as the Father of the Nation in India?", "Gandhi", "Nehru", "Gandhi", "Ambedkar", "Patel"),
		q("What was the ancient name of India?", "All of these", "Hindustan", "Bharat", "Aryavarta", "All of these"),
		q("Who built the Taj Mahal?", "Shah Jahan", "Akbar", "Shah Jahan", "Aurangzeb", "Humayun"),
		q("When was the Indian Constitution adopted?", "1949", "1947", "1948", "1949", "1950"),
		q("Who wrote the Indian National Anthem?", "Tagore", "Tagore", "Bankim Chandra", "Iqbal", "Nehru"),
		q("What is the national animal of India?", "Tiger", "Lion", "Tiger", "Elephant", "Peacock"),
		q("Who was the first woman Prime Minister of India?", "Indira Gandhi", "Indira Gandhi", "Pratibha Patil", "Sonia Gandhi", "Sarojini Naidu"),
		q("In which city is India Gate located?", "New Delhi", "Mumbai", "Kolkata", "New Delhi", "Chennai"),
	}

	return map[string]model.QuestionSet{
		"math":        math,
		"mathematics": math,
		"science":     science,
		"english":     english,
		"history":     history,
	}
}
