package summarize

// summaryPromptTemplate asks the model for a three-point summary of a
// single event, returned as JSON. Fed through fmt.Sprintf with the
// title (twice) and the event text.
const summaryPromptTemplate = `You will summarize the key event of the day in a JSON format. The structure of the JSON should be as follows:

{
    "summary": {
        "title": "%s",
        "section_text": "- <summary point 1>\n- <summary point 2>\n- <summary point 3>"
    }
}

Provide a very simple, concise, three-point summarization. Make it extremely concise. If there is a name, political party, or geographical region
mentioned, then please briefly explain that.


This is the title: %s

Here is the text to summarize:
%s
`

// factPrompt asks the model for one piece of trivia as JSON.
const factPrompt = `Tell me a random obscure, interesting, and enriching information. This can't be about jellyfishes.
These can be anything random from physics, biology, animals, plants, computer science, maths, psychology, economics,
history, politcal science, to pretty much anything.

Return the output in a JSON format.

This is the output:
{
    "fact": "<interesting info>"
}
`
