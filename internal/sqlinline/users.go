package sqlinline

const QInsertUser = `--sql 25c8acc8-a068-4024-a16f-b69dedfc91f7
insert into user_profiles (id, email, password_hash, name, plan_id, settings, usage_stats, created_at, updated_at)
values ($1::uuid, lower($2::text), $3::text, $4::text, $5::text, $6::jsonb, $7::jsonb, now(), now())
returning id, email, name, avatar_url, plan_id, settings, usage_stats, created_at, updated_at;
`

const QSelectUserByID = `--sql 12b8bf67-ef6c-4eb8-8ec8-02f8316fe6bd
select id, email, name, avatar_url, plan_id, settings, usage_stats, created_at, updated_at
from user_profiles
where id = $1::uuid
limit 1;
`

const QSelectUserByEmail = `--sql 67927077-808b-44fc-a84d-0fde6b8b7507
select id, email, password_hash, name, avatar_url, plan_id, settings, usage_stats, created_at, updated_at
from user_profiles
where email = lower($1::text)
limit 1;
`

const QUpdateUserSettings = `--sql 5bc3494a-38c8-4a36-a802-cc6a89bda0f1
update user_profiles
set settings = $2::jsonb,
    updated_at = now()
where id = $1::uuid;
`

const QUpdateUserPlan = `--sql 3aa800b4-4c49-4e5d-b4f8-192e5a7f0835
update user_profiles
set plan_id = $2::text,
    updated_at = now()
where id = $1::uuid
returning id, email, name, avatar_url, plan_id, settings, usage_stats, created_at, updated_at;
`

const QDeleteUser = `--sql b7a64ac1-1381-4423-956c-d7c4adec03b3
delete from user_profiles
where id = $1::uuid;
`
